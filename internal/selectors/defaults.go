package selectors

// Defaults returns the built-in selector table for the supported page
// types. Overrides replace entries key by key; see Merge.
func Defaults() Table {
	return Table{
		"sources": Table{
			"companies_house": Table{
				"start_url":               "https://find-and-update.company-information.service.gov.uk/",
				"alphabetical_search_url": "https://find-and-update.company-information.service.gov.uk/alphabetical-search",
				"navigation": Table{
					"accept_cookies_button": "button#cookie-accept-all-button",
					"search_input":          "input#searchText",
					"search_submit":         "form[action='/search/companies'] button[type='submit'], #search-submit",
				},
				"search_results_page": Table{
					"result_rows":          "ol.results-list li.type-company",
					"company_link":         "a.govuk-link[href*='/company/']",
					"company_status_cell":  "p.meta strong, dd.govuk-summary-list__value",
					"active_status_text":   "active",
					"pagination_next_link": "li.govuk-pagination__next a",
				},
				"company_overview_page": Table{
					"name_header":    "h1.heading-xlarge",
					"company_number": "p#company-number",
					"nature_of_business_sic": []string{
						"div#sic-codes ul li",
						"span#sic0, span[id^='sic']",
					},
					"people_tab_link": "a[href*='/officers']",
				},
				"officers_page": Table{
					"officer_cards":       "div.appointment-card, div[class^='appointment-']",
					"officer_name_link":   "h2 a",
					"officer_role":        "p.officer-role, dd[id^='officer-role']",
					"officer_role_status": "span.govuk-tag",
					"active_role_text":    "active",
				},
				"officer_appointments_page": Table{
					"other_appointments_list": "div.appointments-list > div",
				},
			},
			"clutch": Table{
				"url":          "https://clutch.co/uk/agencies/digital-marketing/london",
				"agency_list":  "li.provider-row",
				"company_name": "h3.company-name a",
				"website_link": ".website-link__item[href*='http']",
				"location":     "span.locality",
			},
		},
		"search_engines": Table{
			"bing": Table{
				"url_template": "https://www.bing.com/search?q=%s",
				"result_link":  "li.b_algo h2 a",
			},
			"duckduckgo": Table{
				"url_template": "https://duckduckgo.com/html/?q=%s",
				"result_link":  "a.result__a",
			},
		},
		"generic_website": Table{
			"phone_patterns": []string{
				`\+44\s?\(?0?\)?\s?\d{2,4}[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`,
				`\(?0\d{2,4}\)?[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`,
			},
			"email_pattern": `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		},
	}
}
