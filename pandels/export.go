package pandels

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func publicBase() string {
	if base := os.Getenv("PUBLIC_BASE"); base != "" {
		return base
	}
	return "http://localhost:8080"
}

// ShareURL is the public page a pandel QR points at.
func ShareURL(id string) string {
	return fmt.Sprintf("%s/pandel/%s", publicBase(), id)
}

// QR serves a PNG QR code linking to the pandel's public page.
func (api *API) QR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}

	var pandel models.Pandel
	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&pandel); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel not found")
		return
	}

	png, err := qrcode.Encode(ShareURL(pandel.ID.Hex()), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ExportPDF renders the pandel directory as an A4 PDF, one row per
// pandel with a share QR.
func (api *API) ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.PandelsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching pandels", err)
		return
	}
	defer cursor.Close(ctx)

	var pandels []models.Pandel
	if err := cursor.All(ctx, &pandels); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error decoding pandels", err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Pandel Directory")
	pdf.Ln(14)

	for i, p := range pandels {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}

		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s", i+1, p.Name))
		pdf.Ln(7)

		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Zone: %s | Type: %s", p.Zone, p.Type))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Address: %s", p.Address))
		pdf.Ln(5)

		if png, err := qrcode.Encode(ShareURL(p.ID.Hex()), qrcode.Medium, 128); err == nil {
			imgName := "qr-" + p.ID.Hex()
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
			pdf.ImageOptions(imgName, 170, pdf.GetY()-17, 18, 18, false, opts, 0, "")
		}
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pandel-directory.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
