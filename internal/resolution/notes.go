package resolution

import (
	"strings"

	"parcelgate/internal/zoning"
)

const noPointNote = "Brak współrzędnych."

func landUseNote(lu zoning.LandUse) string {
	if lu.Available && len(lu.Codes) > 0 {
		return "Użytki: " + strings.Join(lu.Codes, ", ")
	}
	return "Brak danych o użytkach dla tego powiatu."
}

func zoningNote(z zoning.Zoning) string {
	switch z.Status {
	case zoning.StatusCovered:
		note := "Teren objęty MPZP"
		if z.PlanName != nil {
			note += ": " + *z.PlanName
		}
		note += "."
		if z.Purpose != nil {
			note += " Przeznaczenie: " + *z.Purpose
		}
		return note
	case zoning.StatusNotCovered:
		return "Brak MPZP, wymagane warunki zabudowy (WZ)."
	default:
		return "Status MPZP nieznany, sprawdź na geoportalu."
	}
}
