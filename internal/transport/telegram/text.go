package telegram

import "patriot-quiz-bot/internal/domain"

// Button labels. Free-text routing matches on these exact strings, so
// they live in one place.
const (
	btnHeroes      = "💪 Узнать о героях"
	btnQuiz        = "🎯 Викторина"
	btnAssistant   = "🤖 Поговорить с ИИ"
	btnLeaderboard = "👸 Таблица лидеров"
	btnInfo        = "⚙️ Информация о проекте"
	btnBackToMenu  = "⏹️ Назад в меню"

	btnCompetitive = "🏆 Соревновательный режим"
	btnPractice    = "🎯 Пробный режим"
	btnHeroQuizzes = "🎖️ Викторины по героям"

	btnCancelQuiz = "⏹️ Завершить викторину"
	btnCancelMeta = "⏹️ Отмена"

	btnAdminStats     = "⚙️ Просмотреть статистику"
	btnAdminBroadcast = "Начать рассылку"
)

const welcomePhotoURL = "https://i.postimg.cc/Z5Gm3JZT/IMG-1540.jpg"

const welcomeText = " Добро пожаловать в PATRIOT BOT!\n\n" +
	"📚 В этом боте ты узнаешь:\n" +
	"   • О героях, в честь кого названы улицы города Гродно\n" +
	"   • Историю родного края\n\n" +
	"🎯 А также сможешь:\n" +
	"   • Пройти обучающую викторину\n" +
	"   • Проверить свои знания\n" +
	"   • Закрепить изученное\n\n" +
	"🚀 Начнём наше путешествие в историю!\n\n" +
	"👇 Выбери раздел:"

const helpText = "🤖 *Помощь по боту:*\n\n" +
	"🎯 *Викторина* - проверьте свои знания в двух режимах:\n" +
	"   • 🏆 Соревновательный (10 вопросов, одна попытка)\n" +
	"   • 🎯 Пробный (5 вопросов, много попыток)\n" +
	"   • 🎖️ Викторины по героям - тесты по конкретным героям\n\n" +
	"👤 *Узнать о героях* - информация о героях Великой Отечественной войны\n\n" +
	"🤖 *Поговорить с ИИ* - задайте свой вопрос об истории\n\n" +
	"📊 *Таблица лидеров* - лучшие результаты в соревновательном режиме\n\n" +
	"🔄 *Назад* - вернуться в главное меню\n\n" +
	"📞 *Поддержка:* Если возникли проблемы, обратитесь к администратору."

const infoText = "🏛️ Образовательный проект о героях Великой Отечественной войны\n\n" +
	"💻 Технологии:\n" +
	"   • Язык программирования: Go\n" +
	"   • Хранение результатов: Google Таблицы\n\n" +
	"🎯 Цель проекта — формирование патриотизма у молодого поколения " +
	"посредством современных информационных технологий."

const modeMenuText = "🎯 Выберите режим викторины:\n\n" +
	"🏆 Соревновательный режим\n" +
	"• 10 вопросов\n" +
	"• Можно пройти только один раз\n" +
	"• Результат сохраняется\n\n" +
	"🎖️ Викторины по героям\n" +
	"• Тесты по конкретным героям\n" +
	"• Для углубленного изучения\n\n" +
	"🎯 Пробный режим\n" +
	"• 5 случайных вопросов\n" +
	"• Можно проходить много раз\n" +
	"• Для тренировки"

const modeMenuCompletedText = "🎯 Выберите режим викторины:\n\n" +
	"🏆 Соревновательный режим - ❌ ПРОЙДЕН\n" +
	"• 10 вопросов\n" +
	"• Можно пройти только один раз\n" +
	"• Результат сохраняется\n\n" +
	"🎖️ Викторины по героям\n" +
	"• Тесты по конкретным героям\n" +
	"• Для углубленного изучения\n\n" +
	"🎯 Пробный режим\n" +
	"• 5 случайных вопросов\n" +
	"• Можно проходить много раз\n" +
	"• Для тренировки"

const practiceIntroText = "🎯 *Начался пробный режим!*\n" +
	"• 5 случайных вопросов\n" +
	"• Можно проходить много раз\n" +
	"• Удачи! 🍀"

const competitiveIntroText = "✅ *Вся информация сохранена!*\n\n" +
	"🏆 *Начался соревновательный режим!*\n" +
	"• 10 вопросов\n" +
	"• Только одна попытка\n" +
	"• Результат будет сохранен.\n" +
	"• Удачи! 🍀"

const (
	askFirstNameText = "🏆 *Для участия в соревновательном режиме нам нужна дополнительная информация:*\n\n" +
		"👤 Пожалуйста, введите ваше *имя*:"
	askLastNameText = "✅ *Имя принято!*\n\n👤 Теперь введите вашу *фамилию*:"
	askInstitutionText = "✅ *Фамилия принята!*\n\n" +
		"🎓 Теперь введите ваше *учебное заведение*:\n" +
		"_(например: 'Школа №16', 'Колледж информатики')_"
)

const (
	alreadyCompletedText = "❌ Вы уже прошли соревновательный режим!\nЭтот режим можно пройти только один раз."
	notActiveText        = "❌ Викторина не активна. Начните заново."
	pickOptionText       = "❌ Пожалуйста, выберите один из предложенных вариантов ответа."
	noHeroQuestionsText  = "❌ Вопросы для этого героя не найдены"
	assistantIntroText   = "🤖 Задайте вопрос о героях войны или истории родного края.\nЧтобы выйти, нажмите «⏹️ Назад в меню»."
	unknownText          = "❓ <b>Неизвестная команда</b>\n\nИспользуйте кнопки меню или команды:\n• /main_menu - главное меню\n• /help - помощь"
	deniedText           = "⛔ Эта команда доступна только администраторам."
	genericApologyText   = "😔 Что-то пошло не так. Попробуйте еще раз или вернитесь в меню."
	broadcastPromptText  = "📣 Отправьте сообщение для рассылки (текст или фото с подписью)."
)

// gradeEmoji decorates result messages; the persisted grade stays plain.
var gradeEmoji = map[string]string{
	domain.GradeExcellent:    "🏆",
	domain.GradeVeryGood:     "⭐",
	domain.GradeGood:         "✅",
	domain.GradeSatisfactory: "📘",
	domain.GradeTryAgain:     "📚",
}
