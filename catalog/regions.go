package catalog

import "tripcraft/models"

// Region identifiers. The reference region for distances is Yerevan.
const (
	Yerevan     = "Yerevan"
	Aragatsotn  = "Aragatsotn"
	Ararat      = "Ararat"
	Armavir     = "Armavir"
	Gegharkunik = "Gegharkunik"
	Kotayk      = "Kotayk"
	Lori        = "Lori"
	Shirak      = "Shirak"
	Syunik      = "Syunik"
	Tavush      = "Tavush"
	VayotsDzor  = "Vayots Dzor"
)

type area struct{ hy, en string }

// RegionTable holds the static region lookups. It is built once and only read
// afterwards, so it is safe for concurrent use.
type RegionTable struct {
	order       []string
	names       map[string]string
	distances   map[string]int
	attractions map[string][]string
	areas       map[string][]area
}

// Regions returns the region identifiers in display order.
func (t *RegionTable) Regions() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Name localizes a region identifier.
func (t *RegionTable) Name(region, lng string) string {
	if lng == models.LangEn {
		return region
	}
	if hy, ok := t.names[region]; ok {
		return hy
	}
	return region
}

// Distance returns the kilometres from the reference region.
func (t *RegionTable) Distance(region string) (int, bool) {
	km, ok := t.distances[region]
	return km, ok
}

// AttractionIDs lists the attractions located in a region.
func (t *RegionTable) AttractionIDs(region string) []string {
	return t.attractions[region]
}

// Known reports whether the region exists.
func (t *RegionTable) Known(region string) bool {
	_, ok := t.names[region]
	return ok
}

func (t *RegionTable) areaFor(region string, idx int) area {
	list := t.areas[region]
	if len(list) == 0 {
		return area{hy: t.Name(region, models.LangHy), en: region}
	}
	return list[idx%len(list)]
}

// NewRegionTable builds a table from explicit maps. Used by tests that need
// fixture geography.
func NewRegionTable(distances map[string]int, attractions map[string][]string) *RegionTable {
	t := &RegionTable{
		names:       map[string]string{},
		distances:   distances,
		attractions: attractions,
		areas:       map[string][]area{},
	}
	seen := map[string]bool{}
	add := func(r string) {
		if !seen[r] {
			seen[r] = true
			t.order = append(t.order, r)
			t.names[r] = r
		}
	}
	for r := range distances {
		add(r)
	}
	for r := range attractions {
		add(r)
	}
	return t
}

// DefaultRegions is the national region table.
func DefaultRegions() *RegionTable {
	return &RegionTable{
		order: []string{Yerevan, Aragatsotn, Ararat, Armavir, Gegharkunik, Kotayk, Lori, Shirak, Syunik, Tavush, VayotsDzor},
		names: map[string]string{
			Yerevan:     "Երևան",
			Aragatsotn:  "Արագածոտն",
			Ararat:      "Արարատ",
			Armavir:     "Արմավիր",
			Gegharkunik: "Գեղարքունիք",
			Kotayk:      "Կոտայք",
			Lori:        "Լոռի",
			Shirak:      "Շիրակ",
			Syunik:      "Սյունիք",
			Tavush:      "Տավուշ",
			VayotsDzor:  "Վայոց Ձոր",
		},
		// Aragatsotn has no entry and falls back to the planner default.
		distances: map[string]int{
			Yerevan:     0,
			Ararat:      50,
			Armavir:     48,
			Gegharkunik: 70,
			Kotayk:      45,
			Lori:        150,
			Shirak:      120,
			Syunik:      250,
			Tavush:      140,
			VayotsDzor:  130,
		},
		attractions: map[string][]string{
			Yerevan:     {"attr_erebuni", "attr_tsitsernakaberd"},
			Ararat:      {"attr_khor_virap"},
			Armavir:     {"attr_zvartnots"},
			Gegharkunik: {"attr_sevanavank", "attr_geghard", "attr_garni"},
			Kotayk:      {"attr_geghard", "attr_garni"},
			Lori:        {"attr_haghpat", "attr_sanahin"},
			Shirak:      {"attr_gyumri_center", "attr_marmashen"},
			Syunik:      {"attr_tatev", "attr_tatev_wings"},
			Tavush:      {"attr_dilijan_center", "attr_haghartsin"},
			VayotsDzor:  {"attr_noravank", "attr_areni_cave"},
		},
		areas: map[string][]area{
			Yerevan:     {{"Կենտրոն", "Kentron"}, {"Աջափնյակ", "Ajapnyak"}, {"Ավան", "Avan"}, {"Նոր Նորք", "Nor Nork"}},
			Aragatsotn:  {{"Աշտարակ", "Ashtarak"}, {"Ապարան", "Aparan"}, {"Թալին", "Talin"}, {"Կոշ", "Kosh"}},
			Ararat:      {{"Արտաշատ", "Artashat"}, {"Մասիս", "Masis"}, {"Վեդի", "Vedi"}, {"Խոր Վիրապ", "Khor Virap"}},
			Armavir:     {{"Արմավիր", "Armavir"}, {"Մեծամոր", "Metsamor"}, {"Վաղարշապատ", "Vagharshapat"}, {"Բագարան", "Bagaran"}},
			Gegharkunik: {{"Գավառ", "Gavar"}, {"Սևան", "Sevan"}, {"Մարտունի", "Martuni"}, {"Նորատուս", "Noratus"}},
			Kotayk:      {{"Հրազդան", "Hrazdan"}, {"Աբովյան", "Abovyan"}, {"Ծաղկաձոր", "Tsaghkadzor"}, {"Բջնի", "Bjni"}},
			Lori:        {{"Վանաձոր", "Vanadzor"}, {"Ալավերդի", "Alaverdi"}, {"Ստեփանավան", "Stepanavan"}, {"Օձուն", "Odzun"}},
			Shirak:      {{"Գյումրի", "Gyumri"}, {"Արթիկ", "Artik"}, {"Մարալիկ", "Maralik"}, {"Ամասիա", "Amasia"}},
			Syunik:      {{"Կապան", "Kapan"}, {"Գորիս", "Goris"}, {"Սիսիան", "Sisian"}, {"Տաթև", "Tatev"}},
			Tavush:      {{"Իջևան", "Ijevan"}, {"Դիլիջան", "Dilijan"}, {"Բերդ", "Berd"}, {"Նոյեմբերյան", "Noyemberyan"}},
			VayotsDzor:  {{"Եղեգնաձոր", "Yeghegnadzor"}, {"Վայք", "Vayk"}, {"Ջերմուկ", "Jermuk"}, {"Արենի", "Areni"}},
		},
	}
}
