package chat

import (
	"errors"
	"strings"
)

// 消息长度上限（字符数）
const maxMessageLength = 1000

// 最小化的内容黑名单，不是完整的 HTML 清洗
var disallowedSubstrings = []string{"<script>", "javascript:"}

// 校验错误，按检查顺序短路返回
var (
	ErrMessageRequired   = errors.New("message is required and must be a string")
	ErrMessageTooLong    = errors.New("message must be 1000 characters or less")
	ErrMessageDisallowed = errors.New("message contains disallowed content")
)

// ValidateMessage 校验用户消息，首个失败项即返回，不修改输入
func ValidateMessage(message string) error {
	if message == "" {
		return ErrMessageRequired
	}
	if len([]rune(message)) > maxMessageLength {
		return ErrMessageTooLong
	}
	for _, s := range disallowedSubstrings {
		if strings.Contains(message, s) {
			return ErrMessageDisallowed
		}
	}
	return nil
}
