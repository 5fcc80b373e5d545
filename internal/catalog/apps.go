package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceholderIcon is served when an app has no icon
const PlaceholderIcon = "/placeholder.svg"

// BundledIcons maps the asset keys stored on seeded apps to the files
// shipped with the front end
var BundledIcons = map[string]string{
	"deezer.webp":    "/assets/apps/deezer.webp",
	"hbomax.webp":    "/assets/apps/hbomax.webp",
	"disneyplus.png": "/assets/apps/disneyplus.png",
	"premiere.webp":  "/assets/apps/premiere.webp",
	"sky.png":        "/assets/apps/sky.png",
	"playkids.png":   "/assets/apps/playkids.png",
	"ubook.webp":     "/assets/apps/ubook.webp",
	"nba.png":        "/assets/apps/nba.png",
}

type AppStore interface {
	ListApps(ctx context.Context) ([]models.App, error)
	CreateApp(ctx context.Context, app *models.App) error
	UpdateApp(ctx context.Context, app *models.App) error
	DeleteApp(ctx context.Context, id uuid.UUID) error
}

// ObjectStore holds uploaded icons
type ObjectStore interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	PublicURL(key string) string
}

type AppManager struct {
	apps    AppStore
	objects ObjectStore // nil disables uploads
	logger  *zap.Logger
	now     func() time.Time
}

func NewAppManager(apps AppStore, objects ObjectStore, logger *zap.Logger) *AppManager {
	return &AppManager{apps: apps, objects: objects, logger: logger, now: time.Now}
}

// ErrUploadsDisabled is returned when no object store is configured
var ErrUploadsDisabled = errors.New("icon uploads are not configured")

// Load returns apps ordered by name
func (m *AppManager) Load(ctx context.Context) ([]models.App, error) {
	apps, err := m.apps.ListApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	return apps, nil
}

// Public returns apps with resolved icon URLs
func (m *AppManager) Public(ctx context.Context) ([]models.AppResponse, error) {
	apps, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.AppResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, m.Response(app))
	}
	return out, nil
}

func (m *AppManager) Response(app models.App) models.AppResponse {
	ref := ""
	if app.IconURL != nil {
		ref = *app.IconURL
	}
	return models.AppResponse{ID: app.ID, Name: app.Name, IconURL: m.ResolveIcon(ref)}
}

// ResolveIcon turns a stored icon reference into a loadable URL: absolute
// URLs pass through, bundled keys map to shipped assets and anything else
// is treated as an object key.
func (m *AppManager) ResolveIcon(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return PlaceholderIcon
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	}
	if asset, ok := BundledIcons[ref]; ok {
		return asset
	}
	if m.objects != nil {
		return m.objects.PublicURL(ref)
	}
	return PlaceholderIcon
}

func appFromRequest(req models.AppRequest) (*models.App, error) {
	if err := requireText("name", req.Name); err != nil {
		return nil, err
	}
	return &models.App{Name: strings.TrimSpace(req.Name), IconURL: trimmedOrNil(req.IconURL)}, nil
}

func (m *AppManager) Create(ctx context.Context, req models.AppRequest) (*models.App, error) {
	app, err := appFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := m.apps.CreateApp(ctx, app); err != nil {
		return nil, fmt.Errorf("create app: %w", err)
	}
	return app, nil
}

func (m *AppManager) Update(ctx context.Context, id uuid.UUID, req models.AppRequest) (*models.App, error) {
	app, err := appFromRequest(req)
	if err != nil {
		return nil, err
	}
	app.ID = id
	if err := m.apps.UpdateApp(ctx, app); err != nil {
		return nil, fmt.Errorf("update app: %w", err)
	}
	return app, nil
}

// Delete removes an app; its plan links go with it
func (m *AppManager) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := m.apps.DeleteApp(ctx, id); err != nil {
		return fmt.Errorf("delete app: %w", err)
	}
	return nil
}

// UploadIcon stores an image under <unix-millis>.<ext> and returns its public URL
func (m *AppManager) UploadIcon(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if m.objects == nil {
		return "", ErrUploadsDisabled
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return "", &ValidationError{Field: "file", Reason: "has no extension"}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", &ValidationError{Field: "file", Reason: "must be an image"}
	}

	key := fmt.Sprintf("%d.%s", m.now().UnixMilli(), ext)
	url, err := m.objects.PutObject(ctx, key, r, size, contentType)
	if err != nil {
		m.logger.Error("icon upload failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return url, nil
}
