package domain

// Reply-keyboard button labels. These are part of the bot's observable
// protocol: the transport matches inbound text against them to recognize
// commands, so they must stay stable.
const (
	ButtonCreateTask = "📝 Создать задачу"
	ButtonCancel     = "❌ Отмена"
	ButtonBack       = "🔙 Назад"
	ButtonSkip       = "Пропустить"
	ButtonLogout     = "🚪 Выйти из аккаунта"
)

// Keyboard describes the quick-reply options sent with a prompt. When
// Remove is set the transport hides any previous keyboard instead of
// rendering rows.
type Keyboard struct {
	Rows    [][]string
	OneTime bool
	Remove  bool
}

// RemoveKeyboard hides the reply keyboard.
func RemoveKeyboard() Keyboard {
	return Keyboard{Remove: true}
}

// NewKeyboard builds a one-time resizable keyboard from button rows.
func NewKeyboard(rows ...[]string) Keyboard {
	return Keyboard{Rows: rows, OneTime: true}
}
