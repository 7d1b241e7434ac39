package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// Fields a free-text request can leave out.
const (
	MissingQuantity   = "quantity"
	MissingPlacements = "placements"
)

var (
	quantityNounRe  = regexp.MustCompile(`(\d+)\s*(?:t-?shirts?|tshirts?|tees?|shirts?|hoodies?|pieces?|pcs?)\b`)
	quantityLabelRe = regexp.MustCompile(`(?:qty|quantity)\s*[:\-]?\s*(\d+)\b`)
	numberRe        = regexp.MustCompile(`\b\d+\b`)

	colorsThenPlacementRe = regexp.MustCompile(`(\d{1,2})\s*c(?:olou?rs?)?\s*(front|back|left sleeve|right sleeve|sleeves?|pocket)\b`)
	placementThenColorsRe = regexp.MustCompile(`(front|back|left sleeve|right sleeve|sleeves?|pocket)\s*(\d{1,2})\s*c(?:olou?rs?)?\b`)
	frontAndBackRe        = regexp.MustCompile(`\bfront\s*(?:\+|&|and|/)\s*back\b`)
	globalColorsRe        = regexp.MustCompile(`\b(\d{1,2}|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)[\s-]*(?:colou?rs?|clrs?|c)\b`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// mentionedPlacements are matched as whole words, longest first so that
// "left sleeve" is not also read as "sleeve".
var mentionedPlacements = []struct {
	re   *regexp.Regexp
	word string
}{
	{regexp.MustCompile(`\bleft sleeve\b`), "left sleeve"},
	{regexp.MustCompile(`\bright sleeve\b`), "right sleeve"},
	{regexp.MustCompile(`\bsleeves\b`), "sleeves"},
	{regexp.MustCompile(`\bfront\b`), "front"},
	{regexp.MustCompile(`\bback\b`), "back"},
	{regexp.MustCompile(`\bpocket\b`), "pocket"},
}

// ParsedOrder is what could be read out of a free-text quote request such as
// "72 shirts, 2 colors front and 1 color back".
type ParsedOrder struct {
	Quantity   int
	Placements []model.Placement
	// Missing lists what the text did not say, in MissingQuantity, MissingPlacements order.
	Missing []string
}

// Complete reports whether the text named a quantity and at least one placement with colors.
func (p ParsedOrder) Complete() bool {
	return len(p.Missing) == 0
}

// Order builds a print-only order from the parsed fields. garment may be nil,
// in which case the customer supplies the garments.
func (p ParsedOrder) Order(garment model.GarmentSelection) model.OrderRequest {
	if garment == nil {
		garment = model.SupplyOwnGarment{}
	}
	return model.OrderRequest{
		Quantity:   p.Quantity,
		Garment:    garment,
		Placements: append([]model.Placement(nil), p.Placements...),
	}
}

type parsedPlacement struct {
	name   string
	colors int // zero until the text says
	at     int
}

// ParseOrderText reads a quantity and per-placement color counts out of free
// text. Colors stated next to a placement win; a bare color count applies to
// every placement mentioned without one, and to the front when none is
// mentioned. Color counts are capped at model.GlobalMaxColors; the engine
// clamps them further to the shop's limits.
func ParseOrderText(text string) ParsedOrder {
	text = strings.ToLower(text)

	// "2c front 1c back" and "front 2c back 1c" each match both patterns once
	// read the wrong way round; the pattern that matches more often wins.
	first, second := colorsThenPlacement, placementThenColors
	if len(placementThenColorsRe.FindAllStringIndex(text, -1)) > len(colorsThenPlacementRe.FindAllStringIndex(text, -1)) {
		first, second = second, first
	}
	var found []parsedPlacement
	var consumed [][]int
	for _, read := range []placementReader{first, second} {
		f, c := read(remainder(text, consumed))
		found = append(found, f...)
		consumed = append(consumed, c...)
	}

	if loc := frontAndBackRe.FindStringIndex(text); loc != nil && !hasPlacement(found, "front", "back") {
		found = append(found,
			parsedPlacement{name: "front", at: loc[0]},
			parsedPlacement{name: "back", at: loc[0]})
	}
	for _, mp := range mentionedPlacements {
		loc := mp.re.FindStringIndex(text)
		if loc == nil || hasPlacement(found, expandPlacement(mp.word)...) {
			continue
		}
		for _, name := range expandPlacement(mp.word) {
			found = append(found, parsedPlacement{name: name, at: loc[0]})
		}
	}

	global := 0
	rest := remainder(text, consumed)
	if m := globalColorsRe.FindStringSubmatchIndex(rest); m != nil {
		word := rest[m[2]:m[3]]
		if n, ok := numberWords[word]; ok {
			global = n
		} else {
			global = atoiCapped(word)
		}
		rest = remainder(rest, [][]int{m[:2]})
	}
	if len(found) == 0 && global > 0 {
		found = append(found, parsedPlacement{name: "front"})
	}

	var out ParsedOrder
	out.Quantity = parseQuantity(text, rest)
	out.Placements = resolvePlacements(found, global)
	if out.Quantity <= 0 {
		out.Missing = append(out.Missing, MissingQuantity)
	}
	if len(out.Placements) == 0 {
		out.Missing = append(out.Missing, MissingPlacements)
	}
	return out
}

// parseQuantity looks for "72 shirts" or "qty 72" in text, then falls back to
// the largest number left in rest once the color counts are blanked out.
func parseQuantity(text, rest string) int {
	if m := quantityNounRe.FindStringSubmatch(text); m != nil {
		return atoi(m[1])
	}
	if m := quantityLabelRe.FindStringSubmatch(text); m != nil {
		return atoi(m[1])
	}
	largest := 0
	for _, s := range numberRe.FindAllString(rest, -1) {
		if n := atoi(s); n > largest {
			largest = n
		}
	}
	return largest
}

// resolvePlacements keeps the first mention of each placement in text order,
// taking colors from a later mention when the first had none, then fills the
// rest from the bare color count. Placements still without colors are dropped.
func resolvePlacements(found []parsedPlacement, global int) []model.Placement {
	sort.SliceStable(found, func(i, j int) bool { return found[i].at < found[j].at })

	index := make(map[string]int, len(found))
	var merged []parsedPlacement
	for _, p := range found {
		i, seen := index[p.name]
		if !seen {
			index[p.name] = len(merged)
			merged = append(merged, p)
			continue
		}
		if merged[i].colors == 0 {
			merged[i].colors = p.colors
		}
	}

	var out []model.Placement
	for _, p := range merged {
		colors := p.colors
		if colors == 0 {
			colors = global
		}
		if colors > 0 {
			out = append(out, model.Placement{Name: p.name, Colors: colors})
		}
	}
	return out
}

// placementReader returns the placements with colors it reads and the spans it read them from.
type placementReader func(text string) ([]parsedPlacement, [][]int)

func colorsThenPlacement(text string) ([]parsedPlacement, [][]int) {
	return readPlacements(text, colorsThenPlacementRe, 1, 2)
}

func placementThenColors(text string) ([]parsedPlacement, [][]int) {
	return readPlacements(text, placementThenColorsRe, 2, 1)
}

func readPlacements(text string, re *regexp.Regexp, colorsGroup, placementGroup int) ([]parsedPlacement, [][]int) {
	var found []parsedPlacement
	var spans [][]int
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		colors := atoiCapped(text[m[2*colorsGroup]:m[2*colorsGroup+1]])
		for _, name := range expandPlacement(text[m[2*placementGroup]:m[2*placementGroup+1]]) {
			found = append(found, parsedPlacement{name: name, colors: colors, at: m[0]})
		}
		spans = append(spans, m[:2])
	}
	return found, spans
}

func expandPlacement(word string) []string {
	switch word {
	case "sleeves":
		return []string{"left_sleeve", "right_sleeve"}
	case "sleeve", "left sleeve":
		return []string{"left_sleeve"}
	case "right sleeve":
		return []string{"right_sleeve"}
	default:
		return []string{word}
	}
}

func hasPlacement(found []parsedPlacement, names ...string) bool {
	for _, p := range found {
		for _, name := range names {
			if p.name == name {
				return true
			}
		}
	}
	return false
}

// remainder blanks out the spans already read as placement colors.
func remainder(text string, spans [][]int) string {
	b := []byte(text)
	for _, s := range spans {
		for i := s[0]; i < s[1]; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atoiCapped(s string) int {
	return min(atoi(s), model.GlobalMaxColors)
}
