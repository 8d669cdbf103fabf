// Package record assembles the output record of a parsed job posting.
package record

import (
	"strings"

	"github.com/dgallion1/jobpost/internal/sections"
	"github.com/dgallion1/jobpost/internal/vocab"
)

// Record is the structured form of a job posting. Every field is present;
// undetected values are empty strings.
type Record struct {
	JobTitle string            `json:"job_title"`
	Company  string            `json:"company"`
	Salary   string            `json:"salary"`
	Sections map[string]string `json:"sections"`
}

var (
	companySuffixes = []string{"株式会社", "有限会社", "合同会社", "Inc", "LLC", "Co."}
	salaryKeywords  = []string{"給与", "年収", "月給", "時給", "日給", "賞与"}
)

// Empty returns a record carrying every schema key of v with an empty value.
func Empty(v *vocab.Vocabulary) Record {
	if v == nil {
		v = vocab.Default()
	}
	labels := v.SchemaLabels()
	rec := Record{Sections: make(map[string]string, len(labels))}
	for _, l := range labels {
		rec.Sections[string(l)] = ""
	}
	return rec
}

// Assemble builds a record from a split posting. Section text is copied
// under each canonical label; the job title, company and salary are looked
// up from their field sections first and guessed from the remaining lines
// otherwise. When the posting had no headers at all only the sections are
// filled.
func Assemble(res sections.Result, v *vocab.Vocabulary) Record {
	if v == nil {
		v = vocab.Default()
	}
	rec := Empty(v)
	for _, s := range res.Sections {
		rec.Sections[string(s.Label)] = s.Text()
	}
	if res.NoHeaders {
		return rec
	}

	lines := contentLines(res)
	rec.Company = company(res, v, lines)
	rec.JobTitle = jobTitle(res, v, rec.Company)
	rec.Salary = salary(res, v, lines)
	return rec
}

func fieldLine(res sections.Result, v *vocab.Vocabulary, f vocab.Field) string {
	e, ok := v.ByField(f)
	if !ok {
		return ""
	}
	s, ok := res.Section(e.Label)
	if !ok {
		return ""
	}
	return s.FirstLine()
}

func jobTitle(res sections.Result, v *vocab.Vocabulary, company string) string {
	if t := fieldLine(res, v, vocab.FieldJobTitle); t != "" {
		return t
	}
	for _, l := range res.Leading {
		if l == company || hasAny(l, companySuffixes) {
			continue
		}
		if !bracketed(l) {
			return l
		}
		break
	}
	for _, s := range res.Sections {
		if s.Label == vocab.Unknown {
			continue
		}
		if l := s.FirstLine(); l != "" {
			return l
		}
	}
	return ""
}

func company(res sections.Result, v *vocab.Vocabulary, lines []string) string {
	if c := fieldLine(res, v, vocab.FieldCompany); c != "" {
		return c
	}
	for _, l := range lines {
		if hasAny(l, companySuffixes) {
			return l
		}
	}
	if len(res.Leading) > 1 {
		return res.Leading[1]
	}
	return ""
}

func salary(res sections.Result, v *vocab.Vocabulary, lines []string) string {
	if e, ok := v.ByField(vocab.FieldSalary); ok {
		if s, ok := res.Section(e.Label); ok {
			if text := strings.Join(s.Content(), "\n"); text != "" {
				return text
			}
		}
	}
	for _, l := range lines {
		if hasAny(l, salaryKeywords) {
			return l
		}
	}
	return ""
}

// contentLines lists the leading fragment followed by every section's
// content, in section order.
func contentLines(res sections.Result) []string {
	out := append([]string(nil), res.Leading...)
	for _, s := range res.Sections {
		out = append(out, s.Content()...)
	}
	return out
}

func bracketed(s string) bool {
	return strings.HasPrefix(s, "【") || strings.HasPrefix(s, "[") || strings.HasPrefix(s, "［")
}

func hasAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
