// Package config
package config

// ValidResult 配置检查结果
// err 是给用户看的字段级说明, originErr 保留解析或 IO 的底层错误
type ValidResult struct {
	failed    bool
	err       error
	originErr error
}

func ValidPass() *ValidResult {
	return &ValidResult{}
}

func ValidFail(err error) *ValidResult {
	return &ValidResult{failed: true, err: err}
}

// ValidFailWith 失败并附带底层错误, 例如 time.ParseDuration 或 hex 解码的错误
func ValidFailWith(err error, originErr error) *ValidResult {
	return &ValidResult{failed: true, err: err, originErr: originErr}
}

func (r *ValidResult) IsFail() bool { return r.failed }

func (r *ValidResult) Error() error { return r.err }

// OriginErr 没有底层错误时返回字段级说明
func (r *ValidResult) OriginErr() error {
	if r.originErr == nil {
		return r.err
	}
	return r.originErr
}
