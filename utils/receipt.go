package utils

import (
	"fmt"

	"github.com/HananAabout/PFEHotelGestion/models"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReceiptReference builds the printable reference of a payment receipt.
func ReceiptReference(p models.Payment) string {
	return fmt.Sprintf("REC-%d-%d", p.ID, p.CreatedAt.Unix())
}

// ReceiptPDF renders the receipt of a payment. The reservation, its client
// and its room must be preloaded by the caller.
func ReceiptPDF(p models.Payment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14, text.NewCol(12, "Reçu de paiement", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(8, text.NewCol(12, ReceiptReference(p), props.Text{
		Size:  10,
		Align: align.Center,
	}))

	client := p.Reservation.Client
	rows := [][2]string{
		{"Client", fmt.Sprintf("%s %s", client.Prenom, client.Nom)},
		{"Chambre", p.Reservation.Chambre.Numero},
		{"Arrivée", p.Reservation.DateArrivee.Format("2006-01-02")},
		{"Départ", p.Reservation.DateDepart.Format("2006-01-02")},
		{"Montant", fmt.Sprintf("%.2f €", p.Montant)},
		{"Méthode", p.Methode},
		{"Type", p.Type},
		{"Date", p.CreatedAt.Format("2006-01-02 15:04")},
	}
	for _, r := range rows {
		m.AddRow(8,
			text.NewCol(4, r[0], props.Text{Style: fontstyle.Bold, Size: 10}),
			text.NewCol(8, r[1], props.Text{Size: 10}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
