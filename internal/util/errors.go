package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameTaken     = errors.New("该用户名已被注册")
	ErrInvalidCreds      = errors.New("invalid credentials")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrModuleNotFound    = errors.New("module not found")
	ErrPageNotFound      = errors.New("page not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrAlreadySolved     = errors.New("question already solved")
	ErrIncorrectAnswer   = errors.New("incorrect answer")
	ErrGiftCodeNotFound  = errors.New("gift code not found")
	ErrGiftCodeUsed      = errors.New("gift code already used or inactive")
	ErrInsufficientCubes = errors.New("insufficient cubes")
)
