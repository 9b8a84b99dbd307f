package events

// Designer event types written to the outbox so downstream consumers (print
// queue, audit trail) can react to template changes.
const (
	EventTemplateCreated     = "template.created"
	EventTemplateSaved       = "template.saved"
	EventTemplateDeactivated = "template.deactivated"
	EventTemplateRendered    = "template.rendered"
)

// TemplatePayload captures the minimal data describing a template change.
type TemplatePayload struct {
	TemplateID   string `json:"template_id"`
	Name         string `json:"name,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	ElementCount int    `json:"element_count"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p TemplatePayload) ToMap() map[string]any {
	payload := map[string]any{
		"template_id":   p.TemplateID,
		"element_count": p.ElementCount,
	}
	if p.Name != "" {
		payload["name"] = p.Name
	}
	if p.DocumentType != "" {
		payload["document_type"] = p.DocumentType
	}
	return payload
}
