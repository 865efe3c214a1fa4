package catalog

import (
	"fmt"
	"strings"
	"time"

	"tripcraft/models"
)

const placeholderImage = "/placeholder.svg"

// generatedTypes is the type rotation for the generated per-region events.
var generatedTypes = []string{
	models.TypeFestival, models.TypeCulture, models.TypeMusic,
	models.TypeFood, models.TypeSport, models.TypeTradition,
}

// Data is a full catalog snapshot used to seed stores.
type Data struct {
	Events      []models.CatalogEvent
	Attractions []models.Attraction
	Rides       []models.RideOffer
}

func addDays(t time.Time, n int) *time.Time {
	d := t.AddDate(0, 0, n)
	return &d
}

func ptr[T any](v T) *T { return &v }

// SampleData builds the demo catalog relative to now.
func SampleData(now time.Time, regions *RegionTable) Data {
	events := baseEvents(now)
	events = append(events, generatedEvents(now, regions)...)
	return Data{
		Events:      events,
		Attractions: sampleAttractions(),
		Rides:       sampleRides(now),
	}
}

type baseEvent struct {
	id, region, typ  string
	titleHy, titleEn string
	descHy, descEn   string
	areaHy, areaEn   string
	span             int
	price            int
}

func baseEvents(now time.Time) []models.CatalogEvent {
	seeds := []baseEvent{
		{"ev_areni_wine", VayotsDzor, models.TypeFestival, "Արենի Գինու Փառատոն", "Areni Wine Festival",
			"Արենի գինիների համտես, երաժշտություն և տոնական շքերթ", "Areni wine tasting, music and festive parade",
			"Արենի", "Areni", 2, 5000},
		{"ev_vardavar", Yerevan, models.TypeTradition, "Վարդավառ", "Vardavar",
			"Ազգային ավանդույթ ջրախաղերով՝ քաղաքային տոն", "National tradition with water games, a citywide celebration",
			"Կենտրոն", "Kentron", 1, 0},
		{"ev_dilijan_jazz", Tavush, models.TypeMusic, "Դիլիջան Jazz", "Dilijan Jazz",
			"Բացօթյա ջազ համերգներ Դիլիջանի սրտում", "Open-air jazz concerts in the heart of Dilijan",
			"Դիլիջան", "Dilijan", 3, 8000},
		{"ev_gyumri_street_food", Shirak, models.TypeFood, "Գյումրի Street Food", "Gyumri Street Food",
			"Շիրակի ավանդական ուտեստներ և կենդանի երաժշտություն", "Traditional Shirak dishes and live music",
			"Գյումրի", "Gyumri", 2, 3000},
		{"ev_sevan_regatta", Gegharkunik, models.TypeSport, "Սևան Ռեգատա", "Sevan Regatta",
			"Ռեգատա և ջրային սպորտեր Սևանա լճում", "Regatta and water sports on Lake Sevan",
			"Սևան", "Sevan", 4, 0},
		{"ev_tatev_fest", Syunik, models.TypeCulture, "Տաթև Մշակութային Փառատոն", "Tatev Cultural Festival",
			"Տաթևի վանքի շրջակայքում արվեստի և արհեստների համադրություն", "Arts and crafts showcase around Tatev Monastery",
			"Տաթև", "Tatev", 5, 4000},
		{"ev_lori_pumpkin", Lori, models.TypeFestival, "Լոռու Դդմի Տոն", "Lori Pumpkin Festival",
			"Աշնանային տոն՝ տնական ուտեստներով և մրցույթներով", "Autumn festival with homemade dishes and contests",
			"Վանաձոր", "Vanadzor", 2, 0},
		{"ev_ararat_apricot", Ararat, models.TypeFood, "Ծիրանի Տոն", "Apricot Festival",
			"Արարատյան դաշտավայրի ծիրանի փառատոն և շուկա", "Apricot festival and market in Ararat Valley",
			"Արտաշատ", "Artashat", 3, 2000},
		{"ev_armavir_harvest", Armavir, models.TypeMarket, "Արմավիրի Բերքի Տոն", "Armavir Harvest Fair",
			"Տարեկան տոնավաճառ՝ տեղական արտադրանքով", "Annual fair with local produce",
			"Արմավիր", "Armavir", 1, 0},
		{"ev_kotayk_winter", Kotayk, models.TypeSport, "Հրազդանի Ձմեռային Օրեր", "Hrazdan Winter Days",
			"Ձմեռային մարզական մրցույթներ և տոնավաճառ", "Winter sports competitions and fair in Hrazdan",
			"Հրազդան", "Hrazdan", 3, 3500},
		{"ev_tavush_honey", Tavush, models.TypeFood, "Տավուշ Մեղր և Թեյ", "Tavush Honey & Tea",
			"Տեղական մեղրի, թեյերի և խոտաբույսերի փառատոն", "Festival of local honey, teas and herbs",
			"Իջևան", "Ijevan", 2, 0},
	}

	out := make([]models.CatalogEvent, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, models.CatalogEvent{
			ID:            s.id,
			Region:        s.region,
			TitleHy:       s.titleHy,
			TitleEn:       s.titleEn,
			DescriptionHy: s.descHy,
			DescriptionEn: s.descEn,
			AreaHy:        s.areaHy,
			AreaEn:        s.areaEn,
			Type:          s.typ,
			Date:          now,
			StartDate:     ptr(now),
			EndDate:       addDays(now, s.span),
			ImageURL:      placeholderImage,
			Pricing:       models.EventPricing{IsFree: s.price == 0, Price: s.price},
			CreatedAt:     now,
		})
	}
	return out
}

// generatedEvents adds three events per region, alternating free and paid,
// spread five days apart.
func generatedEvents(now time.Time, regions *RegionTable) []models.CatalogEvent {
	var out []models.CatalogEvent
	for rIdx, region := range regions.Regions() {
		nameHy := regions.Name(region, models.LangHy)
		for i := 0; i < 3; i++ {
			isFree := (rIdx+i)%2 == 0
			price := 0
			if !isFree {
				price = (rIdx + 1) * (i + 1) * 1000
			}
			typ := generatedTypes[(rIdx+i)%len(generatedTypes)]
			base := now.AddDate(0, 0, (rIdx-i)*5)
			duration := (rIdx+i)%4 + 1
			a := regions.areaFor(region, rIdx+i)

			out = append(out, models.CatalogEvent{
				ID:            fmt.Sprintf("ev_%s_%d", slug(region), i),
				Region:        region,
				TitleHy:       fmt.Sprintf("%s %s %d", nameHy, typ, i+1),
				TitleEn:       fmt.Sprintf("%s in %s %d", typ, region, i+1),
				DescriptionHy: fmt.Sprintf("%s տարածաշրջան՝ %s միջոցառում", nameHy, typ),
				DescriptionEn: fmt.Sprintf("%s event in %s", typ, region),
				AreaHy:        a.hy,
				AreaEn:        a.en,
				Type:          typ,
				Date:          base,
				StartDate:     ptr(base),
				EndDate:       addDays(base, duration),
				ImageURL:      placeholderImage,
				Pricing:       models.EventPricing{IsFree: isFree, Price: price},
				CreatedAt:     now,
			})
		}
	}
	return out
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

func sampleAttractions() []models.Attraction {
	at := func(id, titleHy, titleEn, sumHy, sumEn, histHy, histEn string) models.Attraction {
		return models.Attraction{
			ID: id, TitleHy: titleHy, TitleEn: titleEn,
			SummaryHy: sumHy, SummaryEn: sumEn,
			HistoryHy: histHy, HistoryEn: histEn,
			ImageURL: placeholderImage,
		}
	}
	return []models.Attraction{
		at("attr_erebuni", "Էրեբունի ամրոց", "Erebuni Fortress",
			"Երևանի հիմնադրման վայրը", "The founding site of Yerevan",
			"Էրեբունի ամրոցը հիմնադրվել է մ.թ.ա. 782թ.-ին՝ ուրարտական արքա Արգիշտի Ա-ի կողմից։",
			"Erebuni Fortress was founded in 782 BC by Urartian King Argishti I."),
		at("attr_tsitsernakaberd", "Ծիծեռնակաբերդ", "Tsitsernakaberd",
			"Հայոց ցեղասպանության հուշահամալիր", "Armenian Genocide Memorial Complex",
			"Ծիծեռնակաբերդը կառուցվել է 1967թ.-ին՝ ի հիշատակ 1915թ.-ի Հայոց ցեղասպանության զոհերի։",
			"Tsitsernakaberd was built in 1967 to commemorate the victims of the 1915 Armenian Genocide."),
		at("attr_khor_virap", "Խոր Վիրապ", "Khor Virap",
			"Սուրբ Գրիգոր Լուսավորիչի բանտը", "The prison of Saint Gregory the Illuminator",
			"Խոր Վիրապը հայտնի է որպես այն վայր, որտեղ 13 տարի բանտարկված է եղել Սուրբ Գրիգոր Լուսավորիչը։",
			"Khor Virap is famous as the place where Saint Gregory the Illuminator was imprisoned for 13 years."),
		at("attr_zvartnots", "Զվարթնոց տաճար", "Zvartnots Cathedral",
			"ՅՈՒՆԵՍԿՕ-ի համաշխարհային ժառանգության օբյեկտ", "UNESCO World Heritage site",
			"Զվարթնոց տաճարը կառուցվել է 7-րդ դարում և եղել է ամենամեծ եկեղեցիներից մեկը։",
			"Zvartnots Cathedral was built in the 7th century and was one of the largest churches."),
		at("attr_sevanavank", "Սևանավանք", "Sevanavank",
			"Տեղակայված Սևանա լճի ափին", "Located on the shores of Lake Sevan",
			"Սևանավանքը հիմնվել է 874թ.-ին՝ իշխան Աշոտ Բագրատունու կնոջ՝ Մարիամի կողմից։",
			"Sevanavank was founded in 874 AD by Princess Mariam, wife of Prince Ashot Bagratuni."),
		at("attr_geghard", "Գեղարդ", "Geghard Monastery",
			"ՅՈՒՆԵՍԿՕ-ի համաշխարհային ժառանգության օբյեկտ", "UNESCO World Heritage site",
			"Գեղարդավանքը հայտնի է իր ժայռափոր եկեղեցիներով և սրբավայրերով։",
			"Geghard is renowned for its rock-cut churches and sacred relics."),
		at("attr_garni", "Գառնիի տաճար", "Garni Temple",
			"Հելլենիստական ժամանակաշրջանի միակ պահպանված տաճարը", "The only preserved temple from the Hellenistic period",
			"Գառնիի տաճարը կառուցվել է մ.թ. 1-ին դարում և նվիրված է եղել արևի աստծուն։",
			"Garni Temple was built in the 1st century AD and was dedicated to the sun god."),
		at("attr_haghpat", "Հաղպատի վանք", "Haghpat Monastery",
			"ՅՈՒՆԵՍԿՕ-ի համաշխարհային ժառանգության օբյեկտ", "UNESCO World Heritage site",
			"Հաղպատի վանքը հիմնադրվել է 10-րդ դարում և եղել է մշակութային ու գիտական կենտրոն։",
			"Haghpat Monastery was founded in the 10th century and served as a cultural and scholarly center."),
		at("attr_sanahin", "Սանահինի վանք", "Sanahin Monastery",
			"ՅՈՒՆԵՍԿՕ-ի համաշխարհային ժառանգության օբյեկտ", "UNESCO World Heritage site",
			"Սանահինի վանքը հիմնադրվել է 10-րդ դարում և հայտնի է իր գրադարանով ու դպրոցով։",
			"Sanahin Monastery was founded in the 10th century and is famous for its library and school."),
		at("attr_gyumri_center", "Գյումրիի պատմական կենտրոն", "Gyumri Historic Center",
			"19-րդ դարի ճարտարապետական ժառանգություն", "19th century architectural heritage",
			"Գյումրին հայտնի է իր 19-րդ դարի քարե ճարտարապետությամբ և մշակութային կյանքով։",
			"Gyumri is famous for its 19th century stone architecture and cultural life."),
		at("attr_marmashen", "Մարմաշենի վանք", "Marmashen Monastery",
			"10-րդ դարի վանական համալիր", "10th century monastic complex",
			"Մարմաշենի վանքը կառուցվել է 10-րդ դարում և հայտնի է իր ճարտարապետական գեղեցկությամբ։",
			"Marmashen Monastery was built in the 10th century and is famous for its architectural beauty."),
		at("attr_tatev", "Տաթևի վանք", "Tatev Monastery",
			"Միջնադարյան վանական համալիր՝ Սյունիքում", "Medieval monastic complex in Syunik",
			"Տաթևի վանքը հիմնադրվել է 9-րդ դարում և եղել է մշակութային և գիտական կենտրոն։",
			"Founded in the 9th century, Tatev Monastery served as a major cultural and scholarly center."),
		at("attr_tatev_wings", "Տաթևի թևեր", "Wings of Tatev",
			"Ամենաերկար գագաթնակետային ճոպանուղին աշխարհում", "The longest reversible aerial tramway in the world",
			"Տաթևի թևերը կառուցվել է 2010թ.-ին՝ 5.7 կմ երկարությամբ ճոպանուղի։",
			"Wings of Tatev was built in 2010 as a 5.7 km long cable car."),
		at("attr_dilijan_center", "Դիլիջանի պատմական կենտրոն", "Dilijan Historic Center",
			"Հայաստանի Շվեյցարիա", "Armenia's Switzerland",
			"Դիլիջանը հայտնի է իր բնական գեղեցկությամբ և 19-20-րդ դարերի ճարտարապետությամբ։",
			"Dilijan is famous for its natural beauty and 19th-20th century architecture."),
		at("attr_haghartsin", "Հաղարծինի վանք", "Haghartsin Monastery",
			"10-13-րդ դարերի վանական համալիր", "10th-13th century monastic complex",
			"Հաղարծինի վանքը կառուցվել է 10-13-րդ դարերում և հայտնի է իր ճարտարապետական հարստությամբ։",
			"Haghartsin Monastery was built in the 10th-13th centuries and is famous for its architectural richness."),
		at("attr_noravank", "Նորավանք", "Noravank",
			"13-14-րդ դարերի վանական համալիր", "13th-14th century monastic complex",
			"Նորավանքը կառուցվել է 13-14-րդ դարերում և հայտնի է իր կարմիր քարե ճարտարապետությամբ։",
			"Noravank was built in the 13th-14th centuries and is famous for its red stone architecture."),
		at("attr_areni_cave", "Արենիի քարանձավ", "Areni Cave",
			"Աշխարհի ամենահին գինու գործարանը", "The world's oldest winery",
			"Արենիի քարանձավում հայտնաբերվել է 6100 տարեկան գինու գործարան, որը համարվում է աշխարհի ամենահինը։",
			"A 6100-year-old winery was discovered in Areni Cave, considered the world's oldest."),
	}
}

func sampleRides(now time.Time) []models.RideOffer {
	ride := func(id, orgID, orgName, to string, offset, seats int, route []string, eventID string, free bool, price int) models.RideOffer {
		return models.RideOffer{
			ID:          id,
			Organizer:   models.Organizer{ID: orgID, Name: orgName},
			From:        Yerevan,
			To:          to,
			Date:        now.AddDate(0, 0, offset),
			Seats:       seats,
			Route:       route,
			EventID:     eventID,
			RidePricing: &models.RidePricing{IsFree: free, PricePerSeat: price},
			CreatedAt:   now,
		}
	}
	return []models.RideOffer{
		ride("tp_1", "u_ani", "Ani", VayotsDzor, 0, 3, []string{"Yerevan", "Artashat", "Areni", "Yeghegnadzor"}, "ev_areni_wine", false, 2000),
		ride("tp_2", "u_aram", "Aram", VayotsDzor, 0, 2, []string{"Yerevan", "Masis", "Artashat", "Areni"}, "ev_areni_wine", true, 0),
		ride("tp_3", "u_maria", "Maria", Gegharkunik, 2, 4, []string{"Yerevan", "Abovyan", "Sevan"}, "ev_sevan_regatta", false, 1500),
		ride("tp_4", "u_david", "David", Tavush, 1, 2, []string{"Yerevan", "Ijevan", "Dilijan"}, "ev_dilijan_jazz", true, 0),
		ride("tp_5", "u_sara", "Sara", Syunik, 3, 3, []string{"Yerevan", "Goris", "Tatev"}, "ev_tatev_fest", false, 3000),
		ride("tp_6", "u_levon", "Levon", Lori, 5, 5, []string{"Yerevan", "Vanadzor", "Alaverdi"}, "ev_lori_pumpkin", false, 1200),
		ride("tp_7", "u_nare", "Nare", Shirak, 4, 2, []string{"Yerevan", "Gyumri"}, "ev_gyumri_street_food", true, 0),
		ride("tp_8", "u_armen", "Armen", Ararat, 6, 4, []string{"Yerevan", "Artashat", "Khor Virap"}, "ev_ararat_apricot", false, 800),
	}
}
