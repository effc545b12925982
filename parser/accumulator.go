package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"crescer-uniformes/models"
)

// accumulator holds the order currently being read.
// It is passed by value through the fold; consume returns the next state.
type accumulator struct {
	open  bool
	order models.StagingOrder
}

func headerAccumulator(header, school string) accumulator {
	if school == "" {
		school = FallbackSchool
	}
	return accumulator{
		open: true,
		order: models.StagingOrder{
			RawHeader:     header,
			School:        school,
			PaymentStatus: paymentFromText(header),
			Items:         []string{},
			ParsedItems:   []models.ParsedItem{},
			RawLines:      []string{},
			Status:        models.ImportPending,
		},
	}
}

func headerlessAccumulator() accumulator {
	return accumulator{
		open: true,
		order: models.StagingOrder{
			School:        UnknownSchool,
			PaymentStatus: models.PaymentPending,
			Items:         []string{},
			ParsedItems:   []models.ParsedItem{},
			RawLines:      []string{},
			Status:        models.ImportPending,
		},
	}
}

// consume applies one line. A school header closes the open order,
// which is returned finalized.
func (a accumulator) consume(line string) (accumulator, *models.StagingOrder) {
	if school, ok := matchSchool(line); ok {
		var emitted *models.StagingOrder
		if a.open {
			done := finalize(a.order)
			emitted = &done
		}
		return headerAccumulator(line, school), emitted
	}

	if !a.open {
		a = headerlessAccumulator()
	}
	a.order.RawLines = append(a.order.RawLines, line)

	switch {
	case a.takePhone(line):
	case a.takeNamedLine(line):
	case a.takeItem(line):
	default:
		a.takeFallbackName(line)
	}
	return a, nil
}

func (a *accumulator) upgradePayment(status models.PaymentStatus) {
	a.order.PaymentStatus = a.order.PaymentStatus.Upgrade(status)
}

// takePhone handles a line carrying a phone number; the rest of the line,
// if meaningful, is the customer name.
func (a *accumulator) takePhone(line string) bool {
	match := phonePattern.FindString(line)
	if match == "" {
		return false
	}

	a.order.Phone = NormalizePhone(match)
	rest := strings.TrimSpace(strings.Replace(line, match, "", 1))
	rest = phoneLabelPattern.ReplaceAllString(rest, "")
	if utf8.RuneCountInString(rest) > 2 {
		a.order.CustomerName = rest
	}
	if mentionsPago(line) {
		a.upgradePayment(models.PaymentPaidInFull)
	}
	return true
}

// takeNamedLine handles "Mãe: Joana", "Nome Carla - pago" and similar
func (a *accumulator) takeNamedLine(line string) bool {
	if !namedLinePattern.MatchString(line) {
		return false
	}

	name := strings.TrimSpace(namedLinePrefix.ReplaceAllString(line, ""))
	if mentionsPago(name) {
		a.upgradePayment(models.PaymentPaidInFull)
		name = strings.TrimSpace(replaceFirst(pagoFragment, name))
	}
	if name != "" {
		a.order.CustomerName = name
	}
	return true
}

func (a *accumulator) takeItem(line string) bool {
	if !itemPattern.MatchString(line) {
		return false
	}
	a.order.Items = append(a.order.Items, line)
	return true
}

// takeFallbackName uses the first digit-free line as the customer name
func (a *accumulator) takeFallbackName(line string) {
	if a.order.CustomerName != "" || digitPattern.MatchString(line) || utf8.RuneCountInString(line) <= 2 {
		return
	}
	if mentionsPago(line) {
		a.upgradePayment(models.PaymentPaidInFull)
		a.order.CustomerName = strings.TrimSpace(replaceFirst(pagoFragment, line))
		return
	}
	a.order.CustomerName = line
}

// finalize runs the end-of-block pass: payment safety net, name cleanup
// and item parsing.
func finalize(order models.StagingOrder) models.StagingOrder {
	if order.PaymentStatus == models.PaymentPending {
		fullText := strings.Join(order.RawLines, " ")
		order.PaymentStatus = order.PaymentStatus.Upgrade(paymentFromText(fullText))
	}

	order.CustomerName = cleanCustomerName(order.CustomerName)

	order.ParsedItems = make([]models.ParsedItem, 0, len(order.Items))
	for _, raw := range order.Items {
		order.ParsedItems = append(order.ParsedItems, ParseItem(raw))
	}
	order.Status = models.ImportPending
	return order
}

func cleanCustomerName(name string) string {
	name = pagoFragment.ReplaceAllString(name, "")
	name = nameLabelResidue.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return models.UnknownCustomer
	}
	return capitalizeFirst(name)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
