package intake

import (
	"fmt"
	"strings"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// User-facing texts. Kept together so the whole dialogue reads in one place.
const (
	msgMenu               = "Привет! Выберите команду для продолжения:"
	msgAskEmailFirst      = "Введите вашу корпоративную почту для продолжения:"
	msgCodeSent           = "Код подтверждения отправлен на вашу почту. Пожалуйста, введите его. Если кода нет в основной папке почты, проверьте папку Спам."
	msgBadCode            = "Неверный код подтверждения. Пожалуйста, попробуйте снова."
	msgVerified           = "Почта успешно подтверждена. Выберите команду для продолжения:"
	msgVerifiedAskSummary = "Почта успешно подтверждена. Пожалуйста, введите название задачи."
	msgMailFailed         = "Ошибка при отправке кода подтверждения. Пожалуйста, попробуйте снова позже."
	msgAskSummary         = "Пожалуйста, введите название задачи."
	msgAskDescription     = "Теперь введите описание задачи."
	msgAskUnit            = "Выберите ваше подразделение:"
	msgAskPhone           = "Введите ваш контактный телефон (например, +79123456789)."
	msgBadPhone           = "Неверный формат телефона. Введите номер из 10–15 цифр, можно с '+' в начале."
	msgAskImage           = "Загрузите изображение или отправьте «Пропустить», если изображение не требуется."
	msgImageFailed        = "Не удалось загрузить изображение. Попробуйте ещё раз или отправьте «Пропустить»."
	msgCancelled          = "Действие отменено."
	msgLoggedOut          = "Вы вышли из аккаунта. Для создания задач потребуется повторное подтверждение почты."
	msgTryLater           = "Сервис временно недоступен. Пожалуйста, попробуйте позже."
	msgRestart            = "Что-то пошло не так. Начните заново с команды /start."
	msgCreatedFmt         = "Задача создана: %s - %s."
	msgSubmitFailed       = "Ошибка создания задачи. Пожалуйста, попробуйте позже."
	msgSubmitFailedFmt    = "Ошибка создания задачи: %s"
	msgUnknownFollower    = "Ваша почта не зарегистрирована в трекере. Обратитесь к администратору."
)

func (e *Engine) msgBadDomain() string {
	return fmt.Sprintf(
		"Недопустимый домен почты. Пожалуйста, введите корпоративную почту с допустимым доменом (%s).",
		strings.Join(e.opts.AllowedEmailDomains, ", "))
}

func menuKeyboard() domain.Keyboard {
	return domain.NewKeyboard(
		[]string{domain.ButtonCreateTask},
		[]string{domain.ButtonLogout},
	)
}

func cancelKeyboard() domain.Keyboard {
	return domain.NewKeyboard([]string{domain.ButtonCancel})
}

func backCancelKeyboard() domain.Keyboard {
	return domain.NewKeyboard([]string{domain.ButtonBack, domain.ButtonCancel})
}

func imageKeyboard() domain.Keyboard {
	return domain.NewKeyboard(
		[]string{domain.ButtonSkip},
		[]string{domain.ButtonBack, domain.ButtonCancel},
	)
}

// unitsKeyboard renders one button per business unit plus navigation.
func (e *Engine) unitsKeyboard() domain.Keyboard {
	rows := make([][]string, 0, len(e.opts.BusinessUnits)+1)
	for _, u := range e.opts.BusinessUnits {
		rows = append(rows, []string{u})
	}
	rows = append(rows, []string{domain.ButtonBack, domain.ButtonCancel})
	return domain.NewKeyboard(rows...)
}
