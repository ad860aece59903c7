package outreach

// industryPattern carries the talking points for one recognized industry.
// Industries are matched by whole-word keyword hits on the company name.
type industryPattern struct {
	keywords    []string
	painPoints  []string
	valueProps  []string
	caseStudies []string
}

const generalBusiness = "general_business"

// industryOrder fixes match precedence when a name hits keywords from
// more than one industry.
var industryOrder = []string{
	"automotive", "food_beverage", "beauty_personal", "childcare", "retail",
	"property", "professional_services", "tech_digital", "construction_trades",
	"investment_finance",
}

var industryPatterns = map[string]industryPattern{
	"automotive": {
		keywords: []string{"cars", "automotive", "motors", "garage", "vehicle", "auto"},
		painPoints: []string{
			"keeping your service bays filled during quiet periods",
			"managing customer bookings efficiently",
			"competing with larger dealership groups",
			"attracting younger customers who research online first",
		},
		valueProps: []string{
			"We help independent garages fill 23% more appointments through local digital presence",
			"Our automotive clients see an average 34% increase in service bookings",
			"We've helped 12 independent garages compete effectively against dealerships",
		},
		caseStudies: []string{
			"A local garage in Manchester increased their MOT bookings by 156% in 90 days",
			"An independent dealer we work with now gets 40+ qualified enquiries per month",
		},
	},
	"food_beverage": {
		keywords: []string{"kitchen", "bakery", "bar", "cafe", "restaurant", "food", "catering"},
		painPoints: []string{
			"filling tables during off-peak hours",
			"standing out in a crowded local market",
			"managing online reviews and reputation",
			"attracting customers beyond your immediate area",
		},
		valueProps: []string{
			"We've helped local restaurants increase covers by 28% during quiet periods",
			"Our F&B clients average 4.6-star ratings with 3x more reviews",
			"We specialize in hyper-local marketing that fills seats",
		},
		caseStudies: []string{
			"A London bar we work with increased Tuesday-Thursday covers by 67%",
			"One bakery client went from 12 to 87 Google reviews in 4 months",
		},
	},
	"beauty_personal": {
		keywords: []string{"beauty", "beauties", "hair", "salon", "spa", "cuts", "barber"},
		painPoints: []string{
			"reducing no-shows and last-minute cancellations",
			"keeping your appointment book full",
			"attracting higher-value clients",
			"standing out from competition on your high street",
		},
		valueProps: []string{
			"Our beauty clients reduce no-shows by 67% with our booking system",
			"We help salons increase average transaction value by £32",
			"We've filled 890+ appointment slots for beauty businesses this year",
		},
		caseStudies: []string{
			"A Birmingham salon increased their average ticket from £45 to £78",
			"One barber shop reduced no-shows from 18% to just 3%",
		},
	},
	"childcare": {
		keywords: []string{"childcare", "nursery", "nurseries", "kids", "children", "baby"},
		painPoints: []string{
			"maintaining full enrollment throughout the year",
			"communicating your unique approach to anxious parents",
			"standing out from larger nursery chains",
			"building trust with parents who are researching online",
		},
		valueProps: []string{
			"We help independent nurseries maintain 95%+ occupancy year-round",
			"Our childcare clients see 3x more qualified parent enquiries",
			"We specialize in building trust that converts concerned parents into enrollments",
		},
		caseStudies: []string{
			"A local nursery went from 78% to 98% occupancy in 5 months",
			"One childcare provider now has a 6-month waiting list",
		},
	},
	"retail": {
		keywords: []string{"shop", "store", "retail", "mart", "minimart", "market"},
		painPoints: []string{
			"competing with online retailers and supermarkets",
			"driving foot traffic during quiet periods",
			"building customer loyalty in your local area",
			"showcasing your unique products to the right audience",
		},
		valueProps: []string{
			"We've helped local retailers increase foot traffic by 41%",
			"Our retail clients see average basket sizes increase by £18",
			"We specialize in hyper-local campaigns that drive customers to your door",
		},
		caseStudies: []string{
			"A local shop increased daily footfall from 34 to 89 customers",
			"One retailer's repeat customer rate jumped from 22% to 61%",
		},
	},
	"property": {
		keywords: []string{"property", "properties", "estate", "developments", "housing"},
		painPoints: []string{
			"generating qualified buyer/tenant leads consistently",
			"standing out in a saturated property market",
			"reducing time properties stay on your books",
			"competing with larger estate agency chains",
		},
		valueProps: []string{
			"We help independent agents generate 3x more qualified property leads",
			"Our property clients reduce average time to let/sell by 23 days",
			"We've helped 17 independent agents compete successfully against major chains",
		},
		caseStudies: []string{
			"An independent agent went from 4 to 23 qualified leads per month",
			"One property company reduced their average time to let from 67 to 31 days",
		},
	},
	"professional_services": {
		keywords: []string{"accountant", "accounting", "consulting", "advisor", "advisors", "legal", "solicitor"},
		painPoints: []string{
			"attracting higher-value clients consistently",
			"differentiating from other local firms",
			"generating referrals beyond your existing network",
			"establishing expertise and trust online",
		},
		valueProps: []string{
			"We help professional firms attract 40% more qualified leads",
			"Our clients see average engagement value increase by £4,200",
			"We specialize in positioning that attracts premium clients",
		},
		caseStudies: []string{
			"An accounting firm increased average client value from £2,400 to £7,100",
			"One consulting practice generated £340k in new business in 6 months",
		},
	},
	"tech_digital": {
		keywords: []string{"software", "digital", "tech", "coding", "media", "design", "web"},
		painPoints: []string{
			"finding clients who understand the value you provide",
			"standing out in a crowded digital services market",
			"generating consistent project pipeline",
			"commanding premium rates for your expertise",
		},
		valueProps: []string{
			"We help digital agencies generate 52% more qualified project leads",
			"Our tech clients increase average project value by £12,000",
			"We specialize in positioning that attracts clients who value quality",
		},
		caseStudies: []string{
			"A digital agency went from £8k to £31k average project value",
			"One software company generated 34 qualified demos in 90 days",
		},
	},
	"construction_trades": {
		keywords: []string{"building", "construction", "doors", "windows", "roofing", "plumbing", "developments"},
		painPoints: []string{
			"keeping your project pipeline full year-round",
			"attracting higher-value residential or commercial projects",
			"reducing reliance on word-of-mouth alone",
			"standing out from cheaper competition",
		},
		valueProps: []string{
			"We help trade businesses maintain 92% capacity utilization",
			"Our construction clients see average project value increase by £7,800",
			"We've generated £2.4M in project pipeline for trades this year",
		},
		caseStudies: []string{
			"A local builder went from 3 to 11 projects in their pipeline",
			"One tradesman increased average job value from £3,200 to £9,400",
		},
	},
	"investment_finance": {
		keywords: []string{"investment", "investments", "capital", "finance", "funding"},
		painPoints: []string{
			"attracting qualified high-net-worth clients",
			"building trust in a skeptical market",
			"differentiating from larger institutions",
			"demonstrating expertise and track record",
		},
		valueProps: []string{
			"We help investment firms attract 3x more qualified HNW leads",
			"Our clients see average client AUM increase by 47%",
			"We specialize in trust-building that converts cautious investors",
		},
		caseStudies: []string{
			"One investment firm attracted £12M in new AUM in 8 months",
			"A financial advisor doubled their qualified consultation requests",
		},
	},
	generalBusiness: {
		keywords: []string{"limited", "ltd", "associates", "group", "global", "alliance", "cic"},
		painPoints: []string{
			"generating consistent quality leads for your business",
			"standing out in your local market",
			"maximizing the return on your marketing investment",
			"building a predictable growth engine",
		},
		valueProps: []string{
			"We help UK small businesses increase qualified leads by 47%",
			"Our clients see an average ROI of 340% within 6 months",
			"We've helped 127 UK businesses build predictable growth systems",
		},
		caseStudies: []string{
			"A local business went from 5 to 28 qualified leads per month",
			"One SME increased revenue by £180k in their first year with us",
		},
	},
}

type locationHook struct {
	hook      string
	challenge string
}

var locationHooks = map[string]locationHook{
	"london": {
		hook:      "In a market as competitive as London",
		challenge: "standing out in the capital's crowded marketplace",
	},
	"birmingham": {
		hook:      "In Birmingham's growing business ecosystem",
		challenge: "capturing market share in the Midlands' largest city",
	},
	"manchester": {
		hook:      "In Manchester's competitive market",
		challenge: "thriving in the Northwest's business hub",
	},
	"scotland": {
		hook:      "In the Scottish market",
		challenge: "growing your presence across Scotland",
	},
	"wales": {
		hook:      "In the Welsh business community",
		challenge: "expanding in the Welsh market",
	},
	"liverpool": {
		hook:      "In Liverpool's vibrant business scene",
		challenge: "standing out in Merseyside",
	},
	"leeds": {
		hook:      "In Leeds' competitive environment",
		challenge: "growing in Yorkshire's business capital",
	},
}

var defaultLocationHook = locationHook{
	hook:      "In your local market",
	challenge: "standing out from your competition",
}

// needPayoffQuestions close the message; {company_name} is substituted
// before use.
var needPayoffQuestions = []string{
	"How valuable would it be to have a predictable flow of qualified leads?",
	"What would it mean for {company_name} to reduce customer acquisition costs by 40%?",
	"How would your business transform with a full pipeline year-round?",
	"What could you achieve if marketing became your competitive advantage?",
}
