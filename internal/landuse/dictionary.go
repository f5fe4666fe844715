package landuse

// UseType describes an EGiB land-use group.
type UseType struct {
	Official string `json:"official"`
	Common   string `json:"common"`
	Category string `json:"category"`
	Hint     string `json:"hint"`
}

// SoilClass describes a soil valuation class.
type SoilClass struct {
	Quality     string `json:"quality"`
	Description string `json:"description"`
}

var useTypes = map[string]UseType{
	"R":   {"Grunty orne", "pole / grunty orne", "rolne", "Typowo uprawy polowe; często wymagane odrolnienie przy zabudowie."},
	"Ł":   {"Łąki trwałe", "łąka", "rolne", "Użytki zielone; przy inwestycjach sprawdź ograniczenia środowiskowe i melioracje."},
	"Ps":  {"Pastwiska trwałe", "pastwisko", "rolne", "Użytki zielone; możliwe ograniczenia jak dla łąk."},
	"S":   {"Sady", "sad", "rolne", "Formalnie rolny; nasadzenia wieloletnie."},
	"Br":  {"Grunty rolne zabudowane", "zabudowa zagrodowa / zabudowania gospodarcze", "rolne", "Często siedliska; ważne dla analizy istniejącej zabudowy."},
	"Wsr": {"Grunty pod stawami", "staw / stawy", "rolne", "Sprawdź strefy ochronne i przepisy wodne."},
	"W":   {"Rowy", "rów / rów melioracyjny", "rolne", "Zwróć uwagę na melioracje i przebieg urządzeń wodnych."},
	"Lzr": {"Grunty zadrzewione i zakrzewione na użytkach rolnych", "zakrzaczenia na rolnym", "rolne", "Często mylone z Lz; formalnie nadal rolny."},

	"Ls": {"Lasy", "las", "leśne", "Zwykle duże ograniczenia w zabudowie; sprawdź formy ochrony."},
	"Lz": {"Grunty zadrzewione i zakrzewione", "zadrzewienia / zakrzaczenia", "leśne/zieleń", "Niekoniecznie las, ale może podlegać ochronie drzew."},
	"ZL": {"Grunty przeznaczone do zalesienia", "teren do zalesienia", "leśne/zieleń", "Kierunek leśny; sprawdź MPZP i decyzje środowiskowe."},

	"B":  {"Tereny mieszkaniowe", "zabudowa mieszkaniowa", "zabudowane", "Budownictwo jednorodzinne lub wielorodzinne zależnie od planu."},
	"Ba": {"Tereny przemysłowe", "przemysł / zakład", "zabudowane", "Obszary działalności produkcyjnej lub usługowej."},
	"Bi": {"Inne tereny zabudowane", "inna zabudowa (usługi, obiekty)", "zabudowane", "Zabudowa poza mieszkaniową i przemysłową."},
	"Bp": {"Zurbanizowane tereny niezabudowane lub w trakcie zabudowy", "teren pod zabudowę", "zurbanizowane", "Częste w miastach; teren pod zabudowę."},
	"Bz": {"Tereny rekreacyjno-wypoczynkowe", "rekreacja / wypoczynek", "zurbanizowane", "Parki, ośrodki; ograniczenia wynikają z MPZP."},

	"dr": {"Drogi", "droga", "komunikacja", "Istotne przy dostępie do drogi publicznej i zjazdach."},
	"Tk": {"Tereny kolejowe", "kolej / tory", "komunikacja", "Ograniczenia hałasowe i odległościowe."},
	"Ti": {"Inne tereny komunikacyjne", "komunikacja (place, parkingi)", "komunikacja", "Komunikacja poza drogami i koleją."},

	"Ws": {"Grunty pod wodami powierzchniowymi stojącymi", "jezioro / zbiornik", "wody", "Ryzyko stref zalewowych i ochrony brzegów."},
	"Wp": {"Grunty pod wodami powierzchniowymi płynącymi", "rzeka / strumień", "wody", "Dodatkowe wymagania dotyczące odległości i ochrony."},
	"Wm": {"Morskie wody wewnętrzne", "wody morskie wewnętrzne", "wody", "Rzadkie; wody morskie."},

	"K":  {"Tereny kopalniane", "teren górniczy / kopalnia", "specjalne", "Sprawdź wpływy eksploatacji i ograniczenia."},
	"Tb": {"Tereny różne", "teren różny", "specjalne", "Wymaga dodatkowej weryfikacji."},
	"Tr": {"Tereny rekultywowane", "rekultywacja / teren po eksploatacji", "specjalne", "Możliwe wymogi dodatkowych badań."},
	"Tp": {"Tereny pod urządzeniami technicznymi", "infrastruktura techniczna", "specjalne", "Ujęcia, przepompownie, stacje; sprawdź strefy ochronne."},

	"N": {"Nieużytki", "nieużytek", "rolne/pozostałe", "Może komplikować proces inwestycyjny."},
}

var soilClasses = map[string]SoilClass{
	"I":    {"najlepsza", "Gleby najwyższej jakości; odrolnienie bardzo trudne"},
	"II":   {"bardzo dobra", "Gleby bardzo dobre; odrolnienie trudne"},
	"IIIa": {"dobra", "Gleby dobre; odrolnienie wymaga zgody ministra (kl. I-III)"},
	"IIIb": {"dobra", "Gleby dobre; odrolnienie wymaga zgody ministra (kl. I-III)"},
	"IVa":  {"średnia", "Gleby średnie; odrolnienie łatwiejsze (decyzja starosty)"},
	"IVb":  {"średnia", "Gleby średnie; odrolnienie łatwiejsze"},
	"V":    {"słaba", "Gleby słabe; odrolnienie najłatwiejsze"},
	"VI":   {"najsłabsza", "Gleby najsłabsze; odrolnienie zazwyczaj bezproblemowe"},
	"VIz":  {"najsłabsza", "Gleby pod zadrzewieniami na glebach najsłabszych"},
}

// Lookup returns the use group for an exact code.
func Lookup(code string) (UseType, bool) {
	u, ok := useTypes[code]
	return u, ok
}

// Soil returns the description of a soil class.
func Soil(class string) (SoilClass, bool) {
	s, ok := soilClasses[class]
	return s, ok
}
