// Package seed bootstraps the template catalog with one starter layout per
// common document type so a fresh installation opens with usable designs.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/druckwerk/belegdesigner/internal/element"
	templatedomain "github.com/druckwerk/belegdesigner/internal/template/domain"
)

// EnsureStarterTemplates inserts the starter templates unless the catalog
// already has entries. Existing installations are never touched.
func EnsureStarterTemplates(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&templatedomain.Template{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, starter := range starterTemplates() {
			payload, err := templatedomain.EncodeElements(starter.elements)
			if err != nil {
				return err
			}
			tmpl := templatedomain.Template{
				ID:           node.Generate(),
				Name:         starter.name,
				DocumentType: starter.documentType,
				PaperFormat:  starter.paperFormat,
				Elements:     payload,
				Active:       true,
			}
			if err := tx.Create(&tmpl).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type starter struct {
	name         string
	documentType string
	paperFormat  string
	elements     []element.Element
}

func starterTemplates() []starter {
	return []starter{
		{
			name:         "Standardrechnung",
			documentType: templatedomain.DocTypeRechnung,
			paperFormat:  "A4",
			elements:     invoiceElements(),
		},
		{
			name:         "Standardetikett",
			documentType: templatedomain.DocTypeVersandetikett,
			paperFormat:  "A6",
			elements:     shippingLabelElements(),
		},
		{
			name:         "Kommissionierliste",
			documentType: templatedomain.DocTypeKommissionierlist,
			paperFormat:  "A4",
			elements:     pickListElements(),
		},
	}
}

func invoiceElements() []element.Element {
	id := 0
	next := func(e element.Element) element.Element {
		id++
		e.ID = id
		return e
	}

	sender := element.NewBoundField("{Firma.Name}", 40, 40)
	sender.FontSize = 7

	address := element.NewBoundField("{Kunde.Name}", 40, 90)
	street := element.NewBoundField("{Kunde.Strasse}", 40, 110)
	city := element.NewBoundField("{Kunde.Ort}", 40, 130)

	title := element.New(element.KindText, 40, 200)
	title.Text = "Rechnung"
	title.Bold = true
	title.FontSize = 16

	number := element.NewBoundField("{Dokument.Nummer}", 400, 200)
	date := element.NewBoundField("{Dokument.Datum}", 400, 220)

	items := element.New(element.KindTable, 40, 260)

	total := element.NewBoundField("{Dokument.Brutto}", 400, 430)
	total.Bold = true

	footer := element.NewBoundField("{Firma.IBAN}", 40, 760)
	footer.FontSize = 8

	return []element.Element{
		next(sender), next(address), next(street), next(city),
		next(title), next(number), next(date), next(items),
		next(total), next(footer),
	}
}

func shippingLabelElements() []element.Element {
	recipient := element.NewBoundField("{Kunde.Name}", 20, 20)
	recipient.ID = 1
	street := element.NewBoundField("{Kunde.Strasse}", 20, 40)
	street.ID = 2
	city := element.NewBoundField("{Kunde.Ort}", 20, 60)
	city.ID = 3

	tracking := element.New(element.KindBarcode, 20, 110)
	tracking.ID = 4
	tracking.Binding = "{Versand.TrackingNr}"
	tracking.Text = "{Versand.TrackingNr}"

	return []element.Element{recipient, street, city, tracking}
}

func pickListElements() []element.Element {
	title := element.New(element.KindText, 40, 40)
	title.ID = 1
	title.Text = "Kommissionierliste"
	title.Bold = true
	title.FontSize = 14

	number := element.NewBoundField("{Dokument.Nummer}", 400, 40)
	number.ID = 2

	items := element.New(element.KindTable, 40, 90)
	items.ID = 3
	items.Columns = []element.TableColumn{
		{Field: "PosNr", Title: "Pos", Width: 30},
		{Field: "ArtNr", Title: "Art-Nr", Width: 80},
		{Field: "Bezeichnung", Title: "Bezeichnung", Width: 220},
		{Field: "Menge", Title: "Menge", Width: 50},
	}

	operator := element.NewBoundField("{Meta.Bearbeiter}", 40, 760)
	operator.ID = 4

	return []element.Element{title, number, items, operator}
}
