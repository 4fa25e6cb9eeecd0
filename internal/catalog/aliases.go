package catalog

// Alias tables are fixed configuration keyed by (language, country
// code), loaded once with the catalog and never modified per game.
// They only apply to the language they are registered under; a Spanish
// alias is not accepted while playing in English.

var countryAliases = map[string]map[string][]string{
	"en": {
		"TL": {"timor leste", "east timor"},
		"CI": {"ivory coast", "cote divoire", "cote d ivoire"},
		"CD": {"dr congo", "democratic republic of the congo", "drc"},
		"CG": {"republic of the congo", "congo brazzaville"},
		"BO": {"plurinational state of bolivia"},
		"GB": {"uk", "great britain"},
		"US": {"usa", "united states of america"},
		"AE": {"uae"},
		"VA": {"vatican", "holy see"},
		"KR": {"korea"},
		"LA": {"lao"},
		"FM": {"federated states of micronesia"},
		"MM": {"burma"},
		"CV": {"cabo verde"},
		"SZ": {"swaziland"},
		"CZ": {"czech republic"},
		"MK": {"macedonia"},
		"PS": {"palestinian territories", "state of palestine"},
		"NL": {"holland"},
		"NZ": {"nz"},
		"PG": {"png"},
	},
	"es": {
		"US": {"usa", "eeuu"},
		"GB": {"uk", "ru"},
		"NL": {"holanda"},
		"NZ": {"nz"},
		"PG": {"png"},
		"CD": {"rdc"},
		"AG": {"ab"},
		"VA": {"vaticano"},
		"ST": {"santotome", "stp"},
		"BA": {"bh"},
		"KR": {"cs"},
		"KP": {"cn"},
		"AE": {"eau", "uae"},
		"CF": {"rc"},
		"SB": {"is"},
		"MH": {"im"},
		"GW": {"gb"},
		"TL": {"to"},
		"TT": {"tt"},
		"MK": {"mn"},
		"SS": {"ss"},
		"LK": {"sl"},
		"QA": {"qatar"},
		"IQ": {"iraq"},
		"SV": {"es"},
		"CR": {"cr"},
		"SM": {"sm"},
		"VC": {"svg"},
		"SL": {"sl"},
		"BF": {"bf"},
		"DO": {"rd"},
		"GQ": {"ge"},
		"KN": {"scn"},
		"CI": {"cdm"},
		"SA": {"as"},
		"CV": {"cv"},
	},
}

var capitalAliasTable = map[string]map[string][]string{
	"en": {
		"US": {"washington", "washington dc"},
		"LK": {"kotte", "sjk"},
		"MX": {"cdmx"},
		"ZA": {"cape town", "bloemfontein"},
	},
	"es": {
		"US": {"washington", "washington dc"},
		"LK": {"kotte", "sjk"},
		"MX": {"cdmx", "ciudad de mexico"},
		"ZA": {"ciudad del cabo", "bloemfontein"},
		"BO": {"la paz"},
		"PS": {"jerusalen"},
		"PA": {"ciudad de panama"},
	},
}

func nameAliases(lang, code string) []string {
	return countryAliases[lang][code]
}

func capitalAliases(lang, code string) []string {
	return capitalAliasTable[lang][code]
}
