package assist

import "strings"

// Fact is one retrievable knowledge-base entry. Keywords are lowercase
// stems matched as substrings of the normalized question.
type Fact struct {
	Keywords []string
	Text     string
}

// topicStems marks a question as on-topic at all. Questions that hit no
// stem are redirected rather than answered.
var topicStems = []string{
	"геро", "войн", "подвиг", "партизан", "улиц", "гродно", "фронт",
	"побед", "оборон", "застав", "подполь", "крепост", "освобожд",
	"медал", "орден", "оккупа", "бой", "битв", "солдат", "ветеран",
	"усов", "соломов", "карбышев", "гастелло", "казей", "портнов",
	"хоруж", "машеров",
}

// Knowledge is the static fact store grounding the assistant.
type Knowledge struct {
	facts []Fact
}

func NewKnowledge(facts []Fact) *Knowledge {
	return &Knowledge{facts: facts}
}

// OnTopic reports whether the question touches the bot's subject area.
func (k *Knowledge) OnTopic(question string) bool {
	normalized := normalize(question)
	for _, stem := range topicStems {
		if strings.Contains(normalized, stem) {
			return true
		}
	}
	return false
}

// Retrieve returns the facts whose keywords appear in the question.
func (k *Knowledge) Retrieve(question string) []Fact {
	normalized := normalize(question)
	var hits []Fact
	for _, fact := range k.facts {
		for _, keyword := range fact.Keywords {
			if strings.Contains(normalized, keyword) {
				hits = append(hits, fact)
				break
			}
		}
	}
	return hits
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// DefaultFacts is the embedded knowledge base about the heroes and the
// war history the bot teaches.
var DefaultFacts = []Fact{
	{
		Keywords: []string{"усов", "застав"},
		Text:     "Виктор Усов — начальник 3-й пограничной заставы под Гродно. Застава приняла первый бой утром 22 июня 1941 года и несколько часов сдерживала противника. Усову посмертно присвоено звание Героя Советского Союза, его именем названа улица в Гродно.",
	},
	{
		Keywords: []string{"соломов"},
		Text:     "Ольга Соломова — партизанка и связная подпольного обкома комсомола, действовала в Гродненской области. Погибла в бою в январе 1944 года. В Гродно ее именем названа улица.",
	},
	{
		Keywords: []string{"карбышев", "маутхаузен"},
		Text:     "Дмитрий Карбышев — генерал-лейтенант инженерных войск. Попав в плен, отказался сотрудничать с врагом и погиб в концлагере Маутхаузен в феврале 1945 года. Герой Советского Союза.",
	},
	{
		Keywords: []string{"гастелло", "таран"},
		Text:     "Николай Гастелло — летчик, 26 июня 1941 года направил подбитый самолет на скопление вражеской техники. Экипаж погиб, подвиг вошел в историю как «огненный таран».",
	},
	{
		Keywords: []string{"казей"},
		Text:     "Марат Казей — юный партизан-разведчик. Погиб в 1944 году в возрасте 14 лет, подорвав себя гранатой, чтобы не попасть в плен. Герой Советского Союза.",
	},
	{
		Keywords: []string{"портнов"},
		Text:     "Зинаида Портнова — участница подполья «Юные мстители». Казнена в 1944 году, посмертно удостоена звания Героя Советского Союза.",
	},
	{
		Keywords: []string{"хоруж"},
		Text:     "Вера Хоружая — организатор подполья в Витебске. Арестована и казнена в 1942 году, Герой Советского Союза посмертно.",
	},
	{
		Keywords: []string{"машеров"},
		Text:     "Петр Машеров — командир партизанского отряда, один из руководителей партизанского движения в Беларуси, Герой Советского Союза. После войны возглавлял республику.",
	},
	{
		Keywords: []string{"гродно", "освобожд", "улиц"},
		Text:     "Гродно был оккупирован в первые дни войны и освобожден 16 июля 1944 года в ходе операции «Багратион». Многие улицы города названы в честь героев войны.",
	},
	{
		Keywords: []string{"крепост", "брест"},
		Text:     "Брестская крепость приняла первый удар 22 июня 1941 года; ее защитники держали оборону около месяца. Крепости присвоено звание «Крепость-герой».",
	},
	{
		Keywords: []string{"багратион"},
		Text:     "Операция «Багратион» (лето 1944 года) — наступательная операция, в ходе которой была освобождена Беларусь, включая Минск и Гродно.",
	},
}
