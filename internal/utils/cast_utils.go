// Package utils
package utils

import "strconv"

func StrToInt(str string, defaultValue int) int {
	result, err := strconv.Atoi(str)
	if err != nil {
		return defaultValue
	}
	return result
}

func StrToFloat(str string, defaultValue float64) float64 {
	result, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

func StrToInt64(str string, defaultValue int64) int64 {
	result, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// StrToUint32 PBH 字段为无符号 32 位整数, 部分服务端会发送有符号值
func StrToUint32(str string, defaultValue uint32) uint32 {
	if result, err := strconv.ParseUint(str, 10, 32); err == nil {
		return uint32(result)
	}
	if result, err := strconv.ParseInt(str, 10, 32); err == nil {
		return uint32(int32(result))
	}
	return defaultValue
}
