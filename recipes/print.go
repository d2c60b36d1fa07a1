package recipes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"safeplate/apperr"
	"safeplate/middleware"
	"safeplate/textnorm"
	"safeplate/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// HandlePrint serves GET /api/recipes/:id/print: a one-page PDF card with
// the ingredient options, their allergens, the steps as plain text, and a
// QR code linking back to the recipe page.
func (s *Service) HandlePrint(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	recipe, err := s.GetByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if !recipe.Approved && !middleware.IsAdmin(r.Context()) {
		utils.RespondAppError(w, apperr.NotFound("recipe %q", recipe.ID))
		return
	}

	recipeURL := fmt.Sprintf("%s/recipe/%s", s.cfg.PublicBaseURL, recipe.ID)
	qrPNG, err := qrcode.Encode(recipeURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, recipe.Name, "", "L", false)
	pdf.Ln(2)

	if len(recipe.Tags) > 0 {
		names := make([]string, 0, len(recipe.Tags))
		for _, t := range recipe.Tags {
			names = append(names, t.Name)
		}
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, strings.Join(names, ", "), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Ingredients")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, ing := range recipe.Ingredients {
		for i, opt := range ing.Options {
			line := fmt.Sprintf("%s - %s", opt.Name, opt.Quantity)
			if i > 0 {
				line = "or " + line
			}
			if len(opt.Allergens) > 0 {
				names := make([]string, 0, len(opt.Allergens))
				for _, a := range opt.Allergens {
					names = append(names, a.Name)
				}
				line += fmt.Sprintf(" (contains: %s)", strings.Join(names, ", "))
			}
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Steps")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, textnorm.StripTags(recipe.Steps), "", "L", false)
	pdf.Ln(4)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 250, 30, 30, false, opts, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.Text(160, 283, recipeURL)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to render PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, recipe.ID))
	w.Write(buf.Bytes())
}
