// Package fsd
package fsd

import "errors"

// Result 报文处理结果, Fatal 为 true 时会话将被断开
type Result struct {
	Success bool
	Fatal   bool
	Env     string
	Err     error
}

var defaultError = errors.New("no details error provided")

func ResultSuccess() *Result {
	return &Result{
		Success: true,
		Fatal:   false,
		Env:     "",
		Err:     nil,
	}
}

func ResultError(fatal bool, env string, err error) *Result {
	result := &Result{
		Success: false,
		Fatal:   fatal,
		Env:     env,
	}
	if err != nil {
		result.Err = err
	} else {
		result.Err = defaultError
	}
	return result
}
