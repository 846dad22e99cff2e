package classify

import "strings"

// Highlight is the set of countries to mark on the world map.
type Highlight struct {
	All       bool
	Countries []string
}

// Contains reports whether name is highlighted.
func (h Highlight) Contains(name string) bool {
	if h.All {
		return true
	}
	for _, c := range h.Countries {
		if c == name {
			return true
		}
	}
	return false
}

// allCountries marks a sentinel entry that highlights every country.
const allCountries = "all"

type countryEntry struct {
	keyword   string
	countries []string
}

var (
	middleEast   = []string{"Iran", "Iraq", "Syria", "Israel", "Jordan", "Lebanon", "Saudi Arabia", "Yemen", "Oman", "United Arab Emirates", "Qatar", "Bahrain", "Kuwait", "Turkey"}
	stans        = []string{"Kazakhstan", "Uzbekistan", "Turkmenistan", "Kyrgyzstan", "Tajikistan"}
	usa          = []string{"United States of America"}
	uk           = []string{"United Kingdom"}
	india        = []string{"India"}
	china        = []string{"China"}
	scandinavia  = []string{"Sweden", "Norway", "Denmark", "Finland", "Iceland"}
	pacific      = []string{"Australia", "New Zealand", "Fiji", "Papua New Guinea"}
	northAfrica  = []string{"Egypt", "Libya", "Tunisia", "Algeria", "Morocco"}
	subSaharan   = []string{"Nigeria", "Ethiopia", "Kenya", "Tanzania", "South Africa", "Ghana", "Senegal", "Mali", "Niger", "Chad", "Cameroon"}
	easternEU    = []string{"Russia", "Ukraine", "Belarus", "Poland", "Romania", "Bulgaria", "Hungary", "Czechia", "Slovakia", "Moldova"}
	westernEU    = []string{"Germany", "France", "United Kingdom", "Italy", "Spain", "Poland", "Romania", "Netherlands", "Belgium", "Greece", "Portugal", "Sweden", "Austria", "Switzerland"}
	theAmericas  = []string{"United States of America", "Canada", "Mexico", "Brazil", "Argentina"}
	eastAfrica   = []string{"Kenya", "Tanzania", "Ethiopia", "Uganda"}
	britishIsles = []string{"United Kingdom", "Ireland"}
)

func one(name string) []string { return []string{name} }

// countryTable is ordered; matches union in table order.
var countryTable = []countryEntry{
	// East Asia
	{"china", []string{"China", "Taiwan"}},
	{"taiwan", one("Taiwan")},
	{"japan", one("Japan")},
	{"korea", []string{"South Korea", "North Korea"}},
	{"south korea", one("South Korea")},
	{"north korea", one("North Korea")},
	{"mongolia", one("Mongolia")},

	// Southeast Asia
	{"vietnam", one("Vietnam")},
	{"thailand", one("Thailand")},
	{"cambodia", one("Cambodia")},
	{"myanmar", one("Myanmar")},
	{"burma", one("Myanmar")},
	{"laos", one("Laos")},
	{"indonesia", one("Indonesia")},
	{"malaysia", one("Malaysia")},
	{"philippines", one("Philippines")},
	{"singapore", one("Singapore")},
	{"brunei", one("Brunei")},

	// South Asia
	{"india", india},
	{"pakistan", one("Pakistan")},
	{"bangladesh", one("Bangladesh")},
	{"sri lanka", one("Sri Lanka")},
	{"nepal", one("Nepal")},
	{"bhutan", one("Bhutan")},
	{"afghanistan", one("Afghanistan")},
	{"maldives", one("Maldives")},

	// Central Asia
	{"kazakhstan", one("Kazakhstan")},
	{"uzbekistan", one("Uzbekistan")},
	{"turkmenistan", one("Turkmenistan")},
	{"kyrgyzstan", one("Kyrgyzstan")},
	{"tajikistan", one("Tajikistan")},

	// Middle East
	{"iran", one("Iran")},
	{"iraq", one("Iraq")},
	{"syria", one("Syria")},
	{"israel", one("Israel")},
	{"palestine", one("Palestine")},
	{"jordan", one("Jordan")},
	{"lebanon", one("Lebanon")},
	{"saudi", one("Saudi Arabia")},
	{"yemen", one("Yemen")},
	{"oman", one("Oman")},
	{"uae", one("United Arab Emirates")},
	{"qatar", one("Qatar")},
	{"bahrain", one("Bahrain")},
	{"kuwait", one("Kuwait")},
	{"turkey", one("Turkey")},

	// Europe
	{"russia", one("Russia")},
	{"ukraine", one("Ukraine")},
	{"germany", one("Germany")},
	{"german", []string{"Germany", "Austria", "Switzerland"}},
	{"france", one("France")},
	{"spain", one("Spain")},
	{"italy", one("Italy")},
	{"greece", one("Greece")},
	{"poland", one("Poland")},
	{"romania", one("Romania")},
	{"bulgaria", one("Bulgaria")},
	{"serbia", one("Serbia")},
	{"croatia", one("Croatia")},
	{"hungary", one("Hungary")},
	{"czech", one("Czechia")},
	{"slovakia", one("Slovakia")},
	{"austria", one("Austria")},
	{"switzerland", one("Switzerland")},
	{"netherlands", one("Netherlands")},
	{"belgium", one("Belgium")},
	{"portugal", one("Portugal")},
	{"sweden", one("Sweden")},
	{"norway", one("Norway")},
	{"finland", one("Finland")},
	{"denmark", one("Denmark")},
	{"iceland", one("Iceland")},
	{"ireland", one("Ireland")},
	{"uk", uk},
	{"british", uk},
	{"england", uk},
	{"scotland", uk},
	{"wales", uk},
	{"georgia", one("Georgia")},
	{"armenia", one("Armenia")},
	{"azerbaijan", one("Azerbaijan")},
	{"albania", one("Albania")},
	{"cyprus", one("Cyprus")},
	{"malta", one("Malta")},
	{"slovenia", one("Slovenia")},
	{"bosnia", one("Bosnia and Herz.")},
	{"montenegro", one("Montenegro")},
	{"macedonia", one("North Macedonia")},
	{"kosovo", one("Kosovo")},
	{"moldova", one("Moldova")},
	{"belarus", one("Belarus")},
	{"lithuania", one("Lithuania")},
	{"latvia", one("Latvia")},
	{"estonia", one("Estonia")},
	{"scandinavia", scandinavia},

	// Africa
	{"egypt", one("Egypt")},
	{"ethiopia", one("Ethiopia")},
	{"nigeria", one("Nigeria")},
	{"south africa", one("South Africa")},
	{"kenya", one("Kenya")},
	{"tanzania", one("Tanzania")},
	{"morocco", one("Morocco")},
	{"algeria", one("Algeria")},
	{"libya", one("Libya")},
	{"tunisia", one("Tunisia")},
	{"sudan", one("Sudan")},
	{"eritrea", one("Eritrea")},
	{"somalia", one("Somalia")},
	{"mali", one("Mali")},
	{"niger", one("Niger")},
	{"chad", one("Chad")},
	{"cameroon", one("Cameroon")},
	{"liberia", one("Liberia")},
	{"sierra leone", one("Sierra Leone")},
	{"ghana", one("Ghana")},
	{"senegal", one("Senegal")},

	// Americas
	{"united states", usa},
	{"usa", usa},
	{"america", usa},
	{"cherokee", usa},
	{"oklahoma", usa},
	{"alaska", usa},
	{"canada", one("Canada")},
	{"mexico", one("Mexico")},
	{"brazil", one("Brazil")},
	{"argentina", one("Argentina")},
	{"chile", one("Chile")},
	{"peru", one("Peru")},
	{"colombia", one("Colombia")},
	{"venezuela", one("Venezuela")},

	// Oceania
	{"australia", one("Australia")},
	{"new zealand", one("New Zealand")},
	{"fiji", one("Fiji")},
	{"papua", one("Papua New Guinea")},
	{"pacific", pacific},

	// Regions and special terms
	{"middle east", middleEast},
	{"north africa", northAfrica},
	{"sub-saharan", subSaharan},
	{"central asia", stans},
	{"eastern europe", easternEU},
	{"west bengal", india},
	{"karnataka", india},
	{"kerala", india},
	{"tamil nadu", india},
	{"andhra pradesh", india},
	{"telangana", india},
	{"gujarat", india},
	{"odisha", india},
	{"punjab", []string{"India", "Pakistan"}},
	{"tibet", china},
	{"inner mongolia", china},
	{"sichuan", china},
	{"yunnan", china},
	{"jewish", one("Israel")},
	{"sikh", india},
	{"americas", theAmericas},
	{"europe", westernEU},
	{"east africa", eastAfrica},
	{"british isles", britishIsles},
	{"worldwide", one(allCountries)},
	{"global", one(allCountries)},
	{"accessibility", one(allCountries)},
	{"diaspora", nil},
	{"historic", nil},
}

// Countries derives the map highlight for a geography string. Every matching
// keyword contributes its countries; a worldwide keyword highlights everything.
func Countries(geography string) Highlight {
	text := strings.ToLower(geography)
	if text == "" {
		return Highlight{}
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range countryTable {
		if !strings.Contains(text, e.keyword) {
			continue
		}
		for _, c := range e.countries {
			if c == allCountries {
				return Highlight{All: true}
			}
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return Highlight{Countries: out}
}
