package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/leadgen/internal/selectors"
	"github.com/law-makers/leadgen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func defaultResolver() *selectors.Resolver {
	return selectors.NewResolver(selectors.Defaults())
}

func TestScalarByLabel(t *testing.T) {
	html := `<dl>
		<dt>Company status</dt><dd> Active </dd>
		<dt>Company type</dt><dd>Private limited company</dd>
		<dt>Empty field</dt><dd>  </dd>
	</dl>`
	doc := docFromHTML(t, html)

	assert.Equal(t, "Active", ScalarByLabel(doc, "Company status"))
	assert.Equal(t, "Private limited company", ScalarByLabel(doc, "Company type"))
	assert.Equal(t, models.Unknown, ScalarByLabel(doc, "Empty field"), "empty value yields the sentinel")
	assert.Equal(t, models.Unknown, ScalarByLabel(doc, "Registered office address"), "absent label yields the sentinel")
}

func TestSICFromDoc_ConfiguredSelector(t *testing.T) {
	html := `<div id="sic-codes"><ul>
		<li>73110 - Advertising agencies</li>
		<li>62012 - Business software development</li>
		<li>73110 - Advertising agencies</li>
	</ul></div>`
	doc := docFromHTML(t, html)

	codes := SICFromDoc(doc, defaultResolver())
	assert.Equal(t, []string{"73110", "62012"}, codes)
}

func TestSICFromDoc_LabelFallback(t *testing.T) {
	html := `<dl><dt>Nature of business (SIC)</dt><dd>62090 - Other IT service activities</dd></dl>`
	doc := docFromHTML(t, html)

	codes := SICFromDoc(doc, defaultResolver())
	assert.Equal(t, []string{"62090"}, codes)
}

func TestSICFromDoc_Absent(t *testing.T) {
	doc := docFromHTML(t, `<p>No classification here</p>`)
	assert.Empty(t, SICFromDoc(doc, defaultResolver()))
}

func TestFallbackTexts_StopsAtFirstHit(t *testing.T) {
	html := `<div class="primary">73110</div><div class="secondary">62012</div>`
	doc := docFromHTML(t, html)

	texts := FallbackTexts(doc, []string{"div.primary", "div.secondary"}, ContainsSICCode)
	assert.Equal(t, []string{"73110"}, texts, "first matching selector wins")
}

func TestOfficers_SkipsInactive(t *testing.T) {
	html := `
	<div class="appointment-card">
		<h2><a href="/officers/abc/appointments">SMITH, Jane</a></h2>
		<p class="officer-role">Director</p>
		<span class="govuk-tag">Active</span>
	</div>
	<div class="appointment-card">
		<h2><a href="/officers/def/appointments">JONES, Bob</a></h2>
		<p class="officer-role">Secretary</p>
		<span class="govuk-tag">Resigned</span>
	</div>`
	doc := docFromHTML(t, html)

	officers := Officers(doc, defaultResolver())
	require.Len(t, officers, 1)
	assert.Equal(t, "SMITH, Jane", officers[0].Name)
	assert.Equal(t, "Director", officers[0].Role)
	assert.Equal(t, "/officers/abc/appointments", officers[0].Link)
}

func TestOfficerDetail(t *testing.T) {
	html := `<dl>
		<dt>Date of birth</dt><dd>March 1980</dd>
		<dt>Nationality</dt><dd>British</dd>
		<dt>Country of residence</dt><dd>England</dd>
		<dt>Occupation</dt><dd>Company Director</dd>
		<dt>Date of appointment</dt><dd>3 May 2021</dd>
	</dl>
	<div class="appointments-list">
		<div>OTHER CO LTD (Company number: 09876543) Appointed on 1 Feb 2018</div>
	</div>`
	doc := docFromHTML(t, html)

	detail := OfficerDetail(doc, defaultResolver())
	assert.Equal(t, "March 1980", detail.DateOfBirth)
	assert.Equal(t, "British", detail.Nationality)
	assert.Equal(t, "England", detail.Residence)
	assert.Equal(t, "Company Director", detail.Occupation)
	assert.Equal(t, "3 May 2021", detail.AppointedOn)
	require.Len(t, detail.Appointments, 1)
	assert.Equal(t, "OTHER CO LTD", detail.Appointments[0].Company)
}

func TestCompanyLinks(t *testing.T) {
	html := `
	<a class="govuk-link" href="/company/01234567">Acme Ltd</a>
	<a class="govuk-link" href="/company/01234567">Acme Ltd again</a>
	<a class="govuk-link" href="/company/01234567/filing-history">Filing history</a>
	<a class="govuk-link" href="/company/89999999">Other Ltd</a>`
	doc := docFromHTML(t, html)

	links := CompanyLinks(doc, defaultResolver(), "https://registry.example/search")
	assert.Equal(t, []string{
		"https://registry.example/company/01234567",
		"https://registry.example/company/89999999",
	}, links)
}

func TestCompanyNumber(t *testing.T) {
	doc := docFromHTML(t, `<p id="company-number">Company number 01234567</p>`)
	assert.Equal(t, "01234567", CompanyNumber(doc, defaultResolver(), ""))

	empty := docFromHTML(t, `<p>nothing</p>`)
	assert.Equal(t, "OC445566", CompanyNumber(empty, defaultResolver(), "https://registry.example/company/OC445566"))
	assert.Equal(t, models.Unknown, CompanyNumber(empty, defaultResolver(), "https://example.com/"))
}

func TestResultRows(t *testing.T) {
	html := `
	<ol class="results-list">
	<li class="type-company">
		<a class="govuk-link" href="/company/01234567">Acme Ltd</a>
		<p class="meta"><strong>Active</strong></p>
	</li>
	<li class="type-company">
		<a class="govuk-link" href="/company/02222222">Gone Ltd</a>
		<p class="meta"><strong>Dissolved</strong></p>
	</li>
	<li class="type-company"><p class="meta">no link here</p></li>
	</ol>`
	doc := docFromHTML(t, html)

	rows := ResultRows(doc, defaultResolver(), "https://registry.example/search")
	require.Len(t, rows, 2)
	assert.Equal(t, "https://registry.example/company/01234567", rows[0].URL)
	assert.Equal(t, "Active", rows[0].Status)
	assert.Equal(t, "Dissolved", rows[1].Status)
}

func TestNextPageURL(t *testing.T) {
	doc := docFromHTML(t, `<li class="govuk-pagination__next"><a href="/search/companies?q=x&page=2">Next</a></li>`)
	assert.Equal(t,
		"https://registry.example/search/companies?q=x&page=2",
		NextPageURL(doc, defaultResolver(), "https://registry.example/search/companies?q=x"))

	last := docFromHTML(t, `<ul class="pagination"></ul>`)
	assert.Equal(t, "", NextPageURL(last, defaultResolver(), "https://registry.example/"))
}
