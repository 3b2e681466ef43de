package synth

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/njclarkbmf/oraschemagen/schema"
)

// Domains exposes the primary-key literals already generated for a table.
// Foreign-key synthesis draws from it; the data generator owns the backing
// store and grows it row by row.
type Domains interface {
	PrimaryKeys(table string) []string
}

// DependencyGapError reports a foreign-key column whose referenced table
// has not produced any rows yet. It indicates a generation-ordering
// defect and is fatal: the synthesizer never invents values for it.
type DependencyGapError struct {
	Table      string
	Column     string
	References string
}

func (e *DependencyGapError) Error() string {
	return fmt.Sprintf("table %s column %s: referenced table %s has no generated keys yet",
		e.Table, e.Column, e.References)
}

// Synthesizer produces SQL-ready literals for columns. One instance is
// owned by a single Data generator invocation; the surrogate-key counters
// inside it are never shared.
type Synthesizer struct {
	rng      *rand.Rand
	faker    *gofakeit.Faker
	nullProb float64
	now      time.Time
	counters map[string]int64
}

// New returns a seeded synthesizer. The same seed yields the same value
// stream for the same schema.
func New(seed int64, nullProbability float64) *Synthesizer {
	return &Synthesizer{
		rng:      rand.New(rand.NewSource(seed)),
		faker:    gofakeit.New(seed),
		nullProb: nullProbability,
		now:      time.Now(),
		counters: make(map[string]int64),
	}
}

// NextKey returns the next value of a named counter, starting at 1.
// Tables use their name for surrogate keys; unique columns use
// TABLE.COLUMN for collision-free serials.
func (s *Synthesizer) NextKey(table string) int64 {
	s.counters[table]++
	return s.counters[table]
}

// CurrentKey returns the last surrogate issued for a table (0 if none).
func (s *Synthesizer) CurrentKey(table string) int64 {
	return s.counters[table]
}

// Row synthesizes one row for the table, returning a column-name to
// literal map ready for embedding in an INSERT statement. Values are generated in
// column order so that, for example, EMAIL can be derived from the name
// columns of the same row.
func (s *Synthesizer) Row(t schema.Table, domains Domains) (map[string]string, error) {
	row := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		v, err := s.Value(t, c, row, domains)
		if err != nil {
			return nil, err
		}
		row[strings.ToUpper(c.Name)] = v
	}
	return row, nil
}

// Value synthesizes a single literal for the column. row holds the values
// generated so far for the current row (may be nil).
func (s *Synthesizer) Value(t schema.Table, c schema.Column, row map[string]string, domains Domains) (string, error) {
	pk := t.IsPrimaryKey(c.Name)
	if !pk && !c.NotNull && !c.Unique && s.nullProb > 0 && s.rng.Float64() < s.nullProb {
		return "NULL", nil
	}

	switch c.Kind() {
	case schema.KindIdentifier:
		return s.identifier(t, c, pk, domains)
	case schema.KindDate:
		return s.date(c), nil
	case schema.KindEmail:
		return s.email(t, c, row), nil
	case schema.KindPhone:
		return quote(truncate(s.phone(), c.MaxLength())), nil
	case schema.KindPercent:
		return s.percent(c), nil
	case schema.KindMoney:
		return s.money(c), nil
	case schema.KindJapanese:
		return quote(s.japanese(c)), nil
	case schema.KindLob:
		return s.lob(c), nil
	case schema.KindNumber:
		return s.number(c), nil
	default:
		return quote(truncate(s.text(c), c.MaxLength())), nil
	}
}

// identifier handles primary keys (monotonically increasing surrogate)
// and foreign keys (value drawn from the referenced table's
// already-generated key domain).
func (s *Synthesizer) identifier(t schema.Table, c schema.Column, pk bool, domains Domains) (string, error) {
	if pk {
		return fmt.Sprintf("%d", s.NextKey(strings.ToUpper(t.Name))), nil
	}
	fk, ok := t.ForeignKeyFor(c.Name)
	if !ok {
		// an _ID column with no declared reference behaves like a
		// plain bounded number
		return s.number(c), nil
	}
	keys := domains.PrimaryKeys(strings.ToUpper(fk.ReferencesTable))
	if len(keys) == 0 {
		if strings.EqualFold(fk.ReferencesTable, t.Name) {
			// self-reference: nothing to point at before the first
			// row exists
			return "NULL", nil
		}
		return "", &DependencyGapError{Table: t.Name, Column: c.Name, References: fk.ReferencesTable}
	}
	return keys[s.rng.Intn(len(keys))], nil
}

func (s *Synthesizer) date(c schema.Column) string {
	name := strings.ToUpper(c.Name)
	var start, end time.Time
	switch {
	case strings.Contains(name, "HIRE") || strings.Contains(name, "REGISTRATION"):
		start, end = s.now.AddDate(-5, 0, 0), s.now.AddDate(-1, 0, 0)
	case strings.Contains(name, "ORDER"):
		start, end = s.now.AddDate(-1, 0, 0), s.now
	case strings.Contains(name, "SHIPPING") || strings.Contains(name, "DELIVERY"):
		start, end = s.now.AddDate(0, -6, 0), s.now
	default:
		start, end = s.now.AddDate(-5, 0, 0), s.now
	}
	d := start.Add(time.Duration(s.rng.Int63n(int64(end.Sub(start)))))
	if strings.HasPrefix(c.BaseType(), "TIMESTAMP") {
		return fmt.Sprintf("TO_TIMESTAMP('%s', 'YYYY-MM-DD HH24:MI:SS')", d.Format("2006-01-02 15:04:05"))
	}
	return fmt.Sprintf("TO_DATE('%s', 'YYYY-MM-DD')", d.Format("2006-01-02"))
}

// email derives the address from name columns generated earlier in the
// same row when they exist, otherwise asks the faker for a generic one.
// Unique-flagged columns carry a run-unique serial in the local part so
// the addresses never collide; the serial survives width truncation.
func (s *Synthesizer) email(t schema.Table, c schema.Column, row map[string]string) string {
	first := unquote(row["FIRST_NAME"])
	last := unquote(row["LAST_NAME"])

	local := "user"
	if first != "" && last != "" {
		local = sanitizeLocal(strings.ToLower(string(first[0]) + last))
	} else if !c.Unique {
		addr := s.faker.Email()
		if max := c.MaxLength(); max > 0 && len(addr) > max {
			at := strings.LastIndexByte(addr, '@')
			domain := addr[at:]
			keep := max - len(domain)
			if keep < 1 {
				keep = 1
			}
			addr = addr[:keep] + domain
		}
		return quote(addr)
	}

	var serial string
	if c.Unique {
		serial = fmt.Sprintf("%d", s.NextKey(strings.ToUpper(t.Name)+"."+strings.ToUpper(c.Name)))
	} else {
		serial = fmt.Sprintf("%d", s.rng.Intn(900)+100)
	}

	const domain = "@example.com"
	if max := c.MaxLength(); max > 0 {
		keep := max - len(domain) - len(serial)
		if keep < 1 {
			keep = 1
		}
		if len(local) > keep {
			local = local[:keep]
		}
	}
	return quote(local + serial + domain)
}

func sanitizeLocal(local string) string {
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

func (s *Synthesizer) phone() string {
	return fmt.Sprintf("%03d-%03d-%04d", s.rng.Intn(800)+200, s.rng.Intn(743)+100, s.rng.Intn(10000))
}

// percent stays within [0, upper) where upper is bounded by the declared
// precision: NUMBER(2,2) never reaches 1.00.
func (s *Synthesizer) percent(c schema.Column) string {
	p, sc, ok := c.Precision()
	if !ok {
		p, sc = 4, 2
	}
	intDigits := p - sc
	upper := math.Pow10(intDigits)
	if upper > 1 {
		upper = 1 // percentages read as fractions stay below 1
	}
	v := s.rng.Float64() * upper
	return trimToPrecision(v, p, sc)
}

func (s *Synthesizer) money(c schema.Column) string {
	p, sc, ok := c.Precision()
	if !ok {
		p, sc = 10, 2
	}
	limit := math.Pow10(p-sc) - 1
	upper := math.Min(limit, 20000)
	lower := math.Min(limit, 100)
	v := lower + s.rng.Float64()*(upper-lower)
	return trimToPrecision(v, p, sc)
}

func (s *Synthesizer) number(c schema.Column) string {
	p, sc, ok := c.Precision()
	if !ok {
		p, sc = 6, 0
	}
	if sc > 0 {
		limit := math.Pow10(p-sc) - 1
		v := s.rng.Float64() * math.Min(limit, 10000)
		return trimToPrecision(v, p, sc)
	}
	limit := int64(math.Pow10(p)) - 1
	if limit > 1000000 {
		limit = 1000000
	}
	name := strings.ToUpper(c.Name)
	switch {
	case strings.Contains(name, "QUANTITY"):
		return fmt.Sprintf("%d", s.rng.Int63n(100)+1)
	case strings.Contains(name, "SALARY"):
		return fmt.Sprintf("%d", s.rng.Int63n(17001)+3000)
	default:
		return fmt.Sprintf("%d", s.rng.Int63n(limit)+1)
	}
}

func (s *Synthesizer) lob(c schema.Column) string {
	if c.BaseType() == "BLOB" {
		return "EMPTY_BLOB()"
	}
	// longer synthetic passage for CLOB columns
	return quote(s.faker.Paragraph(2, 3, 12, "\n"))
}

func (s *Synthesizer) text(c schema.Column) string {
	name := strings.ToUpper(c.Name)
	switch {
	case strings.Contains(name, "FIRST") && strings.Contains(name, "NAME"):
		return s.faker.FirstName()
	case strings.Contains(name, "LAST") && strings.Contains(name, "NAME"):
		return s.faker.LastName()
	case strings.Contains(name, "DEPARTMENT"):
		return pick(s.rng, departmentNames)
	case strings.Contains(name, "NAME"):
		return s.faker.Company()
	case strings.Contains(name, "TITLE"):
		return s.faker.JobTitle()
	case strings.Contains(name, "ADDRESS"):
		return s.faker.Street()
	case strings.Contains(name, "CITY"):
		return s.faker.City()
	case strings.Contains(name, "STATE") || strings.Contains(name, "PROVINCE"):
		return s.faker.State()
	case strings.Contains(name, "POSTAL") || strings.Contains(name, "ZIP"):
		return s.faker.Zip()
	case strings.Contains(name, "COUNTRY"):
		return s.faker.Country()
	case strings.Contains(name, "STATUS"):
		return pick(s.rng, orderStatuses)
	case strings.Contains(name, "PAYMENT"):
		return pick(s.rng, paymentMethods)
	case strings.Contains(name, "DESCRIPTION") || strings.Contains(name, "NOTES"):
		return s.faker.Sentence(8)
	default:
		return s.faker.Sentence(3)
	}
}

var departmentNames = []string{
	"Sales", "Finance", "Engineering", "Marketing", "Operations",
	"Human Resources", "Purchasing", "Shipping", "IT", "Accounting",
}

var orderStatuses = []string{"PENDING", "PROCESSING", "SHIPPED", "DELIVERED", "CANCELLED"}

var paymentMethods = []string{"CREDIT", "DEBIT", "BANK_TRANSFER", "PAYPAL", "CASH"}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// trimToPrecision renders v with exactly scale fractional digits and no
// more than precision significant digits, shrinking the value rather than
// failing when it would not fit.
func trimToPrecision(v float64, precision, scale int) string {
	limit := math.Pow10(precision-scale) - math.Pow10(-scale)
	if limit < 0 {
		limit = 0
	}
	if v > limit {
		v = math.Mod(v, limit+math.Pow10(-scale))
	}
	if v < 0 {
		v = -v
	}
	out := fmt.Sprintf("%.*f", scale, v)
	// rounding in Sprintf can push the value back over the limit;
	// leading zeros are not significant digits
	digits := strings.TrimLeft(strings.Replace(out, ".", "", 1), "0")
	if len(digits) > precision {
		out = fmt.Sprintf("%.*f", scale, limit)
	}
	return out
}

// truncate cuts s to max runes; max 0 means unlimited.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		return strings.ReplaceAll(v[1:len(v)-1], "''", "'")
	}
	return ""
}
