package render

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestHTMLPreviewRendersResolvedTree(t *testing.T) {
	e := NewEngine(zap.NewNop(), testClock)
	tree := e.Resolve(context.Background(), TemplateInfo{Name: "Versandetikett"}, shippingLabelElements(), shippingLabelContext())

	html, err := NewHTMLPreview().Render(tree)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"1Z999", "Art-Nr", "Schraube", "left:50px", "top:120px"} {
		if !strings.Contains(html, want) {
			t.Errorf("preview missing %q", want)
		}
	}
}

func TestHTMLPreviewEscapesContent(t *testing.T) {
	tree := &VisualTree{Nodes: []Node{{Text: "<script>alert(1)</script>"}}}
	html, err := NewHTMLPreview().Render(tree)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatal("element text must be escaped")
	}
}

func TestNodeStyleRejectsBadColors(t *testing.T) {
	n := Node{}
	n.Element.Foreground = "red;} body{display:none"
	n.Element.Width = 10
	css := string(nodeStyle(n))
	if strings.Contains(css, "display:none") {
		t.Fatal("unvetted color value leaked into CSS")
	}
}
