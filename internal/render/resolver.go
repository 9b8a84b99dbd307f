// Package render implements the placeholder substitution engine: it projects
// a template's elements against a document-data context into a visual tree
// that a screen preview or the print dispatcher can draw without further
// lookups.
package render

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/druckwerk/belegdesigner/internal/clock"
	"github.com/druckwerk/belegdesigner/internal/element"
	"github.com/druckwerk/belegdesigner/internal/observability/metrics"
	"github.com/druckwerk/belegdesigner/internal/observability/tracing"
	"github.com/druckwerk/belegdesigner/internal/placeholder"
)

// Engine resolves templates against data contexts. Resolution is a pure
// projection: the same elements, data and clock always produce an identical
// tree.
type Engine struct {
	log     *zap.Logger
	clk     clock.Clock
	metrics *metrics.DesignerMetrics
}

func NewEngine(log *zap.Logger, clk clock.Clock) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Engine{
		log:     log.Named("render.engine"),
		clk:     clk,
		metrics: metrics.Designer(),
	}
}

// Resolve walks the elements in z-order and substitutes every data binding.
// All faults are non-fatal: unresolved tokens keep their literal text, empty
// table regions render header-only, unencodable barcodes degrade to text.
// Each such condition is reported once in the tree's warnings.
func (e *Engine) Resolve(ctx context.Context, info TemplateInfo, elements []element.Element, data DataContext) *VisualTree {
	ctx, span := tracing.Tracer().Start(ctx, "render.resolve", trace.WithAttributes(
		attribute.String("template.id", info.ID),
		attribute.Int("template.elements", len(elements)),
	))
	defer span.End()
	_ = ctx

	start := time.Now()
	run := resolveRun{
		engine: e,
		meta:   e.effectiveMeta(data.Meta),
		data:   data,
		tree:   &VisualTree{Template: info, Nodes: make([]Node, 0, len(elements))},
		warned: make(map[string]bool),
	}

	for _, el := range elements {
		run.tree.Nodes = append(run.tree.Nodes, run.resolveElement(el))
	}

	span.SetAttributes(attribute.Int("render.warnings", len(run.tree.Warnings)))
	e.metrics.RenderFinished(time.Since(start).Seconds(), len(run.tree.Warnings))
	e.metrics.UnresolvedTokens(run.unresolved)
	if len(run.tree.Warnings) > 0 {
		e.log.Warn("template resolved with warnings",
			zap.String("template_id", info.ID),
			zap.Strings("warnings", run.tree.Warnings),
		)
	}
	return run.tree
}

// effectiveMeta merges generic meta defaults under the supplied meta fields
// without touching the caller's map. Page fields default to a single page;
// date and time come from the session clock.
func (e *Engine) effectiveMeta(supplied map[string]any) map[string]any {
	now := e.clk.Now()
	meta := map[string]any{
		"Seite":  "1",
		"Seiten": "1",
		"Datum":  now.Format(dateLayout),
		"Zeit":   now.Format("15:04"),
	}
	for k, v := range supplied {
		meta[k] = v
	}
	return meta
}

type resolveRun struct {
	engine     *Engine
	meta       map[string]any
	data       DataContext
	tree       *VisualTree
	warned     map[string]bool
	unresolved int
}

func (r *resolveRun) resolveElement(el element.Element) Node {
	node := Node{Element: el.Clone(), Text: el.Text}

	switch el.Kind {
	case element.KindTable:
		node.Table = r.resolveTable(el)
	case element.KindBarcode:
		content := node.Text
		if el.Binding != "" {
			content = r.resolveToken(el.Binding)
		}
		data, err := encodeBarcode(content)
		if err != nil {
			r.warn("barcode_not_encodable:" + content)
			node.Text = content
			break
		}
		node.Text = content
		node.Barcode = data
	default:
		if el.Binding != "" {
			node.Text = r.resolveToken(el.Binding)
		}
	}
	return node
}

// resolveToken resolves one {Group.Field} reference. Text that is not a
// well-formed token, and tokens whose group or field is absent from the
// context, come back verbatim; a data gap must stay visible on the printed
// document instead of aborting it.
func (r *resolveRun) resolveToken(raw string) string {
	tok, err := placeholder.Parse(raw)
	if err != nil {
		return raw
	}

	var (
		group map[string]any
		ok    bool
	)
	if tok.Group == placeholder.GroupMeta {
		group, ok = r.meta, true
	} else {
		group, ok = r.data.group(tok.Group)
	}
	if !ok {
		r.missed(raw)
		return raw
	}
	value, ok := group[tok.Field]
	if !ok {
		r.missed(raw)
		return raw
	}
	return formatValue(value, placeholder.TypeOf(tok))
}

// resolveTable projects the column spec of a table region against the line
// items: the fixed header row plus one body row per Pos entry, in supplied
// order. No line items is a warning, not an error.
func (r *resolveRun) resolveTable(el element.Element) *TableData {
	table := &TableData{
		Header: make([]string, len(el.Columns)),
		Rows:   make([][]string, 0, len(r.data.Pos)),
	}
	for i, col := range el.Columns {
		table.Header[i] = col.Title
	}

	for _, pos := range r.data.Pos {
		row := make([]string, len(el.Columns))
		for i, col := range el.Columns {
			value, ok := pos[col.Field]
			if !ok {
				r.warn("unresolved_column:Pos." + col.Field)
				continue
			}
			hint := placeholder.TypeOf(placeholder.Token{Group: placeholder.GroupPos, Field: col.Field})
			row[i] = formatValue(value, hint)
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		r.warn("empty_table_region:" + strconv.Itoa(el.ID))
	}
	return table
}

func (r *resolveRun) missed(token string) {
	r.unresolved++
	r.warn("unresolved_token:" + token)
}

func (r *resolveRun) warn(code string) {
	if r.warned[code] {
		return
	}
	r.warned[code] = true
	r.tree.Warnings = append(r.tree.Warnings, code)
}
