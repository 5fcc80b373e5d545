package whatsapp

import "testing"

func TestLink(t *testing.T) {
	cases := []struct {
		number  string
		message string
		out     string
	}{
		{"5573982264379", "", "https://wa.me/5573982264379"},
		{"+55 (73) 98226-4379", "", "https://wa.me/5573982264379"},
		{"5573982264379", "Olá! Preciso de suporte técnico.", "https://wa.me/5573982264379?text=Ol%C3%A1%21%20Preciso%20de%20suporte%20t%C3%A9cnico."},
	}

	for _, c := range cases {
		got := Link(c.number, c.message)
		if got != c.out {
			t.Fatalf("Link(%q, %q)=%q; want %q", c.number, c.message, got, c.out)
		}
	}
}

func TestContactLink(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"(73) 98226-4379", "https://wa.me/5573982264379"},
		{"73982264379", "https://wa.me/5573982264379"},
		{"5573982264379", "https://wa.me/5573982264379"},
		{"", ""},
	}

	for _, c := range cases {
		got := ContactLink(c.in)
		if got != c.out {
			t.Fatalf("ContactLink(%q)=%q; want %q", c.in, got, c.out)
		}
	}
}

func TestTopicLink(t *testing.T) {
	l := Linker{Number: "5573982264379"}
	if got, want := l.TopicLink("unknown"), l.TopicLink(TopicGeneral); got != want {
		t.Fatalf("unknown topic = %q; want general %q", got, want)
	}
	for _, topic := range []string{TopicGeneral, TopicBusiness, TopicCoverage, TopicSupport} {
		if _, ok := Template(topic); !ok {
			t.Fatalf("missing template %q", topic)
		}
	}
}
