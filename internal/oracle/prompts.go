package oracle

import "strings"

// The rubrics are written in German because the invoices and the BetrKV
// vocabulary the model has to recognise are German.

const scopeRubric = `Du bist ein erfahrener Hausverwalter. Prüfe die folgende Rechnung und entscheide eindeutig, ob sie eine einzelne Wohnung bzw. ein Apartment betrifft oder das gesamte Gebäude (Mehrfamilienhaus).

Rechnungen für einzelne Wohnungen dürfen NICHT in die Betriebskostenabrechnung übernommen werden.

Hinweise auf eine EINZELNE WOHNUNG (ungültig):
- Wohnungs- oder Apartmentnummer (z.B. "Wohnung 3", "App. 2", "Whg. Nr. 5")
- Geschoss zusammen mit Wohnungslage (z.B. "2. OG links", "1. Stock rechts")
- ein einzelner Mieter als Rechnungsempfänger
- geringe Verbrauchsmengen, wie sie für eine Wohnung typisch sind
- Zählernummer einer einzelnen Wohnung
- Formulierungen wie "für Ihre Wohnung" oder "Wohnungsabrechnung"

Hinweise auf das GESAMTE GEBÄUDE (gültig):
- Hausverwaltung oder Eigentümergemeinschaft als Rechnungsempfänger
- Verbrauch oder Kosten des Gesamtgebäudes
- Begriffe wie "Mehrfamilienhaus", "Gesamtobjekt", "Haus-Nr."
- Gemeinschaftsflächen, Allgemeinstrom, Hausanschluss
- Formulierungen wie "für das Objekt" oder "Gebäudeabrechnung"
- Hauswart, Gebäudereinigung oder Gartenpflege für das gesamte Objekt

Antworte ausschließlich mit JSON in genau dieser Form:
{
  "is_whole_building": true/false,
  "confidence": "high/medium/low",
  "indicators_found": ["gefundene Hinweise"],
  "reason": "ausführliche Begründung"
}

Rechnungstext:
`

const legalityRubric = `Du bist ein erfahrener Hausverwalter. Beurteile, ob die folgende Rechnung die Anforderungen an eine Betriebskostenabrechnung erfüllt. Die Rechnung wurde bereits als Rechnung für das gesamte Gebäude eingestuft.

Antworte ausschließlich mit JSON in genau dieser Form:
{
  "is_valid": true/false,
  "reason": "..."
}

Eine gültige Rechnung:
- nennt einen Abrechnungs- oder Leistungszeitraum
- enthält eine Zahlungsaufforderung oder ein Zahlungsziel
- weist Nettobetrag, Bruttobetrag und Umsatzsteuer aus oder begründet, warum diese fehlen (z.B. bei öffentlichen Gebührenbescheiden)
- ist nach der BetrKV auf die Mieter umlegbar
- enthält alle Pflichtangaben einer Rechnung nach § 14 UStG

Wichtig: Gebührenbescheide öffentlicher Stellen (z.B. Müllabfuhr, Wasserverbände) sind auch ohne ausgewiesene Umsatzsteuer gültig, wenn alle übrigen Kriterien erfüllt sind.

Rechnungstext:
`

// ScopePrompt builds the building-vs-apartment judgment prompt.
func ScopePrompt(text string) string {
	return scopeRubric + text
}

// LegalityPrompt builds the legal-completeness judgment prompt.
func LegalityPrompt(text string) string {
	return legalityRubric + text
}

// ClassificationPrompt builds the cost-category question for the given
// categories, listed in their declared order.
func ClassificationPrompt(text string, categories []string) string {
	var b strings.Builder
	b.WriteString("Analysiere den folgenden Rechnungstext und bestimme, welche dieser Kostenarten zutrifft:\n")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString("\n\n")
	b.WriteString(text)
	return b.String()
}
