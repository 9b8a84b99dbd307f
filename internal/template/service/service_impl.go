package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/druckwerk/belegdesigner/internal/cache"
	"github.com/druckwerk/belegdesigner/internal/events"
	"github.com/druckwerk/belegdesigner/internal/observability/metrics"
	"github.com/druckwerk/belegdesigner/internal/template/domain"
)

const templateCacheTTL = 5 * time.Minute

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID  *snowflake.Node
	repo   domain.Repository
	outbox *events.Outbox

	gate    *saveGate
	cache   *cache.TTLCache[snowflake.ID, domain.Template]
	metrics *metrics.DesignerMetrics
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Outbox *events.Outbox `optional:"true"`
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("template.service"),

		genID:  p.GenID,
		repo:   p.Repo,
		outbox: p.Outbox,

		gate:    newSaveGate(),
		cache:   cache.NewTTLCache[snowflake.ID, domain.Template](),
		metrics: metrics.Designer(),
	}
}

// Save persists a design session. id == 0 inserts a full new row and returns
// its generated ID; a known id rewrites only the element payload; metadata
// from the original save stays untouched.
func (s *Service) Save(ctx context.Context, req domain.SaveRequest) (*domain.Response, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	payload, err := domain.EncodeElements(req.Elements)
	if err != nil {
		s.metrics.TemplateSaved("error")
		return nil, err
	}

	if id == 0 {
		return s.insert(ctx, req, payload)
	}
	return s.updateElements(ctx, id, payload, len(req.Elements))
}

func (s *Service) insert(ctx context.Context, req domain.SaveRequest, payload []byte) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	docType := strings.TrimSpace(req.DocumentType)
	if docType == "" {
		return nil, domain.ErrInvalidDocumentType
	}
	paper := strings.TrimSpace(req.PaperFormat)
	if paper == "" {
		paper = domain.DefaultPaperFormat
	}

	now := time.Now().UTC()
	tmpl := domain.Template{
		ID:           s.genID.Generate(),
		Name:         name,
		DocumentType: docType,
		PaperFormat:  paper,
		Elements:     payload,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	release := s.gate.acquire(tmpl.ID)
	defer release()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &tmpl); err != nil {
			return err
		}
		return s.publishTx(ctx, tx, events.EventTemplateCreated, events.TemplatePayload{
			TemplateID:   tmpl.ID.String(),
			Name:         tmpl.Name,
			DocumentType: tmpl.DocumentType,
			ElementCount: len(req.Elements),
		})
	})
	if err != nil {
		s.metrics.TemplateSaved("error")
		return nil, err
	}

	s.metrics.TemplateSaved("inserted")
	s.log.Info("template created",
		zap.String("template_id", tmpl.ID.String()),
		zap.String("document_type", tmpl.DocumentType),
		zap.Int("elements", len(req.Elements)),
	)
	return s.toResponse(&tmpl)
}

func (s *Service) updateElements(ctx context.Context, id snowflake.ID, payload []byte, count int) (*domain.Response, error) {
	release := s.gate.acquire(id)
	defer release()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateElements(ctx, tx, id, payload); err != nil {
			return err
		}
		return s.publishTx(ctx, tx, events.EventTemplateSaved, events.TemplatePayload{
			TemplateID:   id.String(),
			ElementCount: count,
		})
	})
	if err != nil {
		if err != domain.ErrNotFound {
			s.metrics.TemplateSaved("error")
		}
		return nil, err
	}

	s.cache.Invalidate(id)
	s.metrics.TemplateSaved("updated")

	tmpl, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(tmpl)
}

// Load fetches a template by ID. It waits for an outstanding save of the
// same template; a corrupt stored payload degrades to an empty element list
// with a warning instead of failing.
func (s *Service) Load(ctx context.Context, rawID string) (*domain.Response, error) {
	id, err := domain.ParseID(rawID)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}

	release := s.gate.acquire(id)
	defer release()

	tmpl, ok := s.cache.Get(id)
	if !ok {
		loaded, err := s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			if err != domain.ErrNotFound {
				s.metrics.TemplateLoaded("error")
			}
			return nil, err
		}
		tmpl = *loaded
		s.cache.Set(id, tmpl, templateCacheTTL)
	}

	resp, err := s.toResponse(&tmpl)
	if err != nil {
		return nil, err
	}
	if resp.Warning != "" {
		s.metrics.TemplateLoaded("degraded")
		s.log.Warn("template payload corrupt, loading empty surface",
			zap.String("template_id", rawID),
		)
	} else {
		s.metrics.TemplateLoaded("ok")
	}
	return resp, nil
}

// List returns the template catalog, optionally filtered to one document
// type. Element payloads are not decoded for listings.
func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	templates, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Response, 0, len(templates))
	for _, tmpl := range templates {
		out = append(out, domain.Response{
			ID:           tmpl.ID.String(),
			Name:         tmpl.Name,
			DocumentType: tmpl.DocumentType,
			PaperFormat:  tmpl.PaperFormat,
			Active:       tmpl.Active,
			CreatedAt:    tmpl.CreatedAt,
			UpdatedAt:    tmpl.UpdatedAt,
		})
	}
	return out, nil
}

// Deactivate retires a template from the catalog. Templates are never hard
// deleted.
func (s *Service) Deactivate(ctx context.Context, rawID string) (*domain.Response, error) {
	id, err := domain.ParseID(rawID)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}

	release := s.gate.acquire(id)
	defer release()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Deactivate(ctx, tx, id); err != nil {
			return err
		}
		return s.publishTx(ctx, tx, events.EventTemplateDeactivated, events.TemplatePayload{
			TemplateID: id.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(id)
	tmpl, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(tmpl)
}

func (s *Service) publishTx(ctx context.Context, tx *gorm.DB, eventType string, payload events.TemplatePayload) error {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.PublishTx(ctx, tx, events.Event{Type: eventType, Payload: payload.ToMap()})
}

func (s *Service) toResponse(tmpl *domain.Template) (*domain.Response, error) {
	elements, err := domain.DecodeElements(tmpl.Elements)
	warning := ""
	if err == domain.ErrCorruptPayload {
		warning = "corrupt_element_payload"
	} else if err != nil {
		return nil, err
	}
	return &domain.Response{
		ID:           tmpl.ID.String(),
		Name:         tmpl.Name,
		DocumentType: tmpl.DocumentType,
		PaperFormat:  tmpl.PaperFormat,
		Elements:     elements,
		Active:       tmpl.Active,
		Warning:      warning,
		CreatedAt:    tmpl.CreatedAt,
		UpdatedAt:    tmpl.UpdatedAt,
	}, nil
}
