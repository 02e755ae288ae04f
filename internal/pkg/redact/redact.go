// redact предоставляет утилиты безопасного редактирования чувствительных
// данных для логов (e-mail и токены). Домен e-mail и хвост токена
// сохраняются, чтобы по логам можно было отличить пользователей и сессии.
package redact

import "strings"

// tokenTail — сколько последних символов токена оставлять в логах.
const tokenTail = 6

// Email маскирует e-mail для логирования.
//
// Правила:
//   - Строка должна содержать РОВНО один символ '@', иначе возвращается "***";
//   - Локальная часть заменяется на первые два символа (по рунам) + "***";
//   - Если длина локальной части ≤ 2 символов — возвращается "***@<domain>";
//   - Доменная часть возвращается без изменений.
//
// Примеры:
//
//	"foobar@example.com"   -> "fo***@example.com"
//	"ab@ex.com"            -> "***@ex.com"
//	"no-at"                -> "***"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := s[:i], s[i+1:]

	lr := []rune(local)
	if len(lr) > 2 {
		local = string(lr[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token маскирует токен: оставляет только последние символы подписи.
// Короткие строки (где хвост выдал бы заметную часть значения) скрываются целиком.
func Token(s string) string {
	if len(s) <= tokenTail*4 {
		return "[REDACTED_TOKEN]"
	}

	return "***" + s[len(s)-tokenTail:]
}
