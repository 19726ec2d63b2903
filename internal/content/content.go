// Package content holds the static catalog the bot ships with: the quiz
// question set, the hero roster and the hero-to-question mapping. It backs
// the default bank loader when no Postgres URL is configured.
package content

import "patriot-quiz-bot/internal/domain"

// HeroCount is the number of selectable heroes in the browser.
const HeroCount = 35

// HeroNames maps hero ID (1-based) to display name.
var HeroNames = map[int]string{
	1:  "Виктор Усов",
	2:  "Ольга Соломова",
	3:  "Александр Антонов",
	4:  "Иван Счастный",
	5:  "Николай Волков",
	6:  "Дмитрий Карбышев",
	7:  "Елизавета Чайкина",
	8:  "Сергей Гусев",
	9:  "Андрей Зимин",
	10: "Павел Кузнецов",
	11: "Михаил Белуш",
	12: "Анна Маслова",
	13: "Константин Орлов",
	14: "Владимир Соколов",
	15: "Петр Гаврилов",
	16: "Зинаида Портнова",
	17: "Алексей Маресьев",
	18: "Иван Лебедев",
	19: "Николай Гастелло",
	20: "Марат Казей",
	21: "Василий Корж",
	22: "Вера Хоружая",
	23: "Кирилл Вишневский",
	24: "Федор Смолячков",
	25: "Григорий Токарев",
	26: "Мария Осипова",
	27: "Степан Шутов",
	28: "Леонид Беда",
	29: "Иван Якубовский",
	30: "Евгений Клумов",
	31: "Тихон Бумажков",
	32: "Надежда Троян",
	33: "Алексей Данукалов",
	34: "Владимир Лобанок",
	35: "Петр Машеров",
}

// HeroBios holds short biographies shown in the hero browser. Not every
// hero has one; the browser falls back to the name alone.
var HeroBios = map[int]string{
	1:  "Виктор Усов — начальник пограничной заставы, принявшей первый бой 22 июня 1941 года. Герой Советского Союза.",
	2:  "Ольга Соломова — партизанка, связная подпольного обкома. Погибла в бою в 1944 году.",
	6:  "Дмитрий Карбышев — генерал-лейтенант инженерных войск, погиб в концлагере Маутхаузен, не предав Родину.",
	16: "Зинаида Портнова — юная подпольщица, Герой Советского Союза.",
	19: "Николай Гастелло — летчик, направивший горящий самолет на колонну врага.",
	20: "Марат Казей — юный партизан-разведчик, Герой Советского Союза.",
	22: "Вера Хоружая — организатор витебского подполья.",
	35: "Петр Машеров — командир партизанского отряда, Герой Советского Союза.",
}

// Questions is the general quiz catalog. The competitive and practice
// modes draw from the full set; heroes map to subsets via HeroQuestions.
var Questions = []domain.Question{
	{ID: 1, Prompt: "В каком году началась Великая Отечественная война?", Options: []string{"1939", "1940", "1941", "1942"}, Correct: 2},
	{ID: 2, Prompt: "Какой город первым принял удар немецких войск на рассвете 22 июня?", Options: []string{"Минск", "Брест", "Гродно", "Смоленск"}, Correct: 1},
	{ID: 3, Prompt: "Сколько дней длилась оборона Брестской крепости по официальным данным?", Options: []string{"Около недели", "Около месяца", "Три дня", "Полгода"}, Correct: 1},
	{ID: 4, Prompt: "Кто командовал заставой, названной позже именем Виктора Усова?", Options: []string{"Виктор Усов", "Николай Гастелло", "Петр Гаврилов", "Марат Казей"}, Correct: 0},
	{ID: 5, Prompt: "Какое звание было присвоено Виктору Усову посмертно?", Options: []string{"Герой Советского Союза", "Кавалер ордена Славы", "Народный герой", "Почетный гражданин"}, Correct: 0},
	{ID: 6, Prompt: "Кем была Ольга Соломова в годы войны?", Options: []string{"Летчицей", "Партизанкой-связной", "Врачом", "Снайпером"}, Correct: 1},
	{ID: 7, Prompt: "В каком году был освобожден Гродно?", Options: []string{"1943", "1944", "1945", "1942"}, Correct: 1},
	{ID: 8, Prompt: "Как называлась операция по освобождению Беларуси?", Options: []string{"Уран", "Багратион", "Кутузов", "Искра"}, Correct: 1},
	{ID: 9, Prompt: "Какой подвиг совершил Николай Гастелло?", Options: []string{"Огненный таран", "Воздушный таран", "Захват моста", "Побег из плена"}, Correct: 0},
	{ID: 10, Prompt: "В каком концлагере погиб генерал Дмитрий Карбышев?", Options: []string{"Освенцим", "Бухенвальд", "Маутхаузен", "Дахау"}, Correct: 2},
	{ID: 11, Prompt: "Сколько лет было Марату Казею, когда он погиб?", Options: []string{"14", "15", "16", "17"}, Correct: 0},
	{ID: 12, Prompt: "Чем прославилась Зинаида Портнова?", Options: []string{"Работой в подполье", "Обороной крепости", "Танковым боем", "Воздушными победами"}, Correct: 0},
	{ID: 13, Prompt: "Какая река протекает через Гродно?", Options: []string{"Днепр", "Неман", "Буг", "Припять"}, Correct: 1},
	{ID: 14, Prompt: "Когда отмечается День Победы?", Options: []string{"1 мая", "9 мая", "22 июня", "3 июля"}, Correct: 1},
	{ID: 15, Prompt: "Когда отмечается День Независимости Республики Беларусь?", Options: []string{"9 мая", "22 июня", "3 июля", "17 сентября"}, Correct: 2},
	{ID: 16, Prompt: "Кто такой Петр Машеров в годы войны?", Options: []string{"Командир партизанского отряда", "Командующий фронтом", "Летчик-истребитель", "Моряк"}, Correct: 0},
	{ID: 17, Prompt: "Что такое «рельсовая война»?", Options: []string{"Диверсии партизан на железных дорогах", "Битва за вокзал", "Строительство дорог", "Эвакуация заводов"}, Correct: 0},
	{ID: 18, Prompt: "Какой город-герой находится на территории Беларуси?", Options: []string{"Минск", "Гомель", "Витебск", "Могилев"}, Correct: 0},
	{ID: 19, Prompt: "Вера Хоружая организовала подполье в городе:", Options: []string{"Пинске", "Витебске", "Бресте", "Орше"}, Correct: 1},
	{ID: 20, Prompt: "В честь кого в Гродно названа улица Соломовой?", Options: []string{"Ольги Соломовой", "Анны Масловой", "Веры Хоружей", "Надежды Троян"}, Correct: 0},
	{ID: 21, Prompt: "Сколько примерно жителей Беларуси погибло в годы войны?", Options: []string{"Каждый десятый", "Каждый третий", "Каждый второй", "Каждый двадцатый"}, Correct: 1},
	{ID: 22, Prompt: "Какое сражение называют крупнейшим танковым в истории?", Options: []string{"Курская битва", "Битва за Москву", "Сталинградская битва", "Операция Багратион"}, Correct: 0},
	{ID: 23, Prompt: "Кто водрузил Знамя Победы над Рейхстагом?", Options: []string{"Егоров и Кантария", "Жуков и Конев", "Гастелло и Маресьев", "Казей и Портнова"}, Correct: 0},
	{ID: 24, Prompt: "Пограничная застава Усова находилась недалеко от города:", Options: []string{"Гродно", "Минска", "Гомеля", "Полоцка"}, Correct: 0},
}

// HeroQuestions maps hero ID to indices into Questions. Heroes without an
// entry have no quiz; selecting them reports that no questions exist.
var HeroQuestions = map[int][]int{
	1:  {3, 4, 23, 1, 0},
	2:  {5, 19, 16, 6},
	6:  {9, 0, 13},
	16: {11, 10, 16},
	19: {8, 0, 21},
	20: {10, 16, 13, 20},
	22: {18, 16, 5},
	35: {15, 7, 14, 16, 6, 20},
}

// DefaultBank assembles the embedded catalog into a domain bank.
func DefaultBank() domain.Bank {
	return domain.Bank{
		Questions:     Questions,
		HeroQuestions: HeroQuestions,
	}
}
