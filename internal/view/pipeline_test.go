package view

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
	"github.com/Al-Faravi/Stock-Viewer/internal/store"
)

func rec(code, date string) models.StockRecord {
	return models.StockRecord{TradeCode: code, Date: date}
}

func codes(rows []models.StockRecord) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TradeCode
	}
	return out
}

func TestEmptySearchKeepsEveryRecordInOrder(t *testing.T) {
	in := []models.StockRecord{
		rec("GP", "2023-01-02"),
		rec("BEXIMCO", "2023-01-01"),
		rec("ACI", "2023-01-03"),
	}
	out := Apply(in, Query{})
	assert.Equal(t, []string{"GP", "BEXIMCO", "ACI"}, codes(out))
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	in := []models.StockRecord{
		rec("BexImco", "2023-01-01"),
		rec("GP", "2023-01-02"),
		rec("EXIM1STMF", "2023-01-03"),
	}
	out := Apply(in, Query{Search: "exim"})
	assert.Equal(t, []string{"BexImco", "EXIM1STMF"}, codes(out))

	assert.Equal(t, 0, len(Apply(in, Query{Search: "zzz"})))
}

func TestDateSortReversesForDistinctDates(t *testing.T) {
	in := []models.StockRecord{
		rec("B", "2023-01-02"),
		rec("C", "2023-01-03"),
		rec("A", "2023-01-01"),
	}
	asc := Apply(in, Query{Key: SortByDate, Dir: Ascending})
	desc := Apply(in, Query{Key: SortByDate, Dir: Descending})

	assert.Equal(t, []string{"A", "B", "C"}, codes(asc))
	assert.Equal(t, []string{"C", "B", "A"}, codes(desc))
}

func TestDateSortIsStableOnTies(t *testing.T) {
	in := []models.StockRecord{
		rec("FIRST", "2023-01-02"),
		rec("SECOND", "2023-01-02"),
		rec("EARLY", "2023-01-01"),
		rec("THIRD", "2023-01-02"),
	}
	asc := Apply(in, Query{Key: SortByDate, Dir: Ascending})
	assert.Equal(t, []string{"EARLY", "FIRST", "SECOND", "THIRD"}, codes(asc))

	// Ties keep input order in both directions.
	desc := Apply(in, Query{Key: SortByDate, Dir: Descending})
	assert.Equal(t, []string{"FIRST", "SECOND", "THIRD", "EARLY"}, codes(desc))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := []models.StockRecord{
		rec("B", "2023-01-02"),
		rec("A", "2023-01-01"),
	}
	Apply(in, Query{Key: SortByDate, Dir: Ascending})
	assert.Equal(t, []string{"B", "A"}, codes(in))
}

func TestFilterThenSortEndToEnd(t *testing.T) {
	in := []models.StockRecord{
		rec("ABC", "2023-01-05"),
		rec("XYZ", "2023-01-03"),
	}
	sorted := Apply(in, Query{Key: SortByDate, Dir: Ascending})
	assert.Equal(t, []string{"XYZ", "ABC"}, codes(sorted))

	searched := Apply(in, Query{Search: "ab", Key: SortByDate, Dir: Ascending})
	assert.Equal(t, []string{"ABC"}, codes(searched))
}

func TestToggle(t *testing.T) {
	q := Query{Key: SortByDate, Dir: Ascending}

	q = q.Toggle(SortByDate)
	assert.Equal(t, Descending, q.Dir)

	q = q.Toggle(SortByDate)
	assert.Equal(t, Ascending, q.Dir)

	// Activating a different column resets to ascending.
	q.Dir = Descending
	q = q.Toggle(SortKey("volume"))
	assert.Equal(t, SortKey("volume"), q.Key)
	assert.Equal(t, Ascending, q.Dir)
}

func TestPipelineMemoizesPerVersionAndQuery(t *testing.T) {
	s := store.New()
	s.Load([]models.StockRecord{rec("ABC", "2023-01-05"), rec("XYZ", "2023-01-03")})
	p := NewPipeline(s)
	q := Query{Key: SortByDate, Dir: Ascending}

	first := p.Rows(q)
	second := p.Rows(q)
	// Unchanged inputs serve the memoized slice, not a recomputation.
	assert.Equal(t, true, &first[0] == &second[0])

	s.Append(rec("GP", "2023-01-01"))
	third := p.Rows(q)
	assert.Equal(t, 3, len(third))
	assert.Equal(t, "GP", third[0].TradeCode)
}
