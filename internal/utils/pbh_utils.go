// Package utils
package utils

import "math"

// 位置报文中的 PBH 字段: pitch 与 bank 为 10 位有符号数, heading 为 10 位无符号数, bit1 表示在地面
const (
	pitchMultiplier   = 256.0 / 90.0
	bankMultiplier    = 512.0 / 180.0
	headingMultiplier = 1024.0 / 360.0

	pbhFieldMask  = 0x3FF
	pbhOnGround   = 0b10
	headingOffset = 2
	bankOffset    = 12
	pitchOffset   = 22
)

func packAngle(value float64, multiplier float64) uint32 {
	return uint32(int(math.Round(value*multiplier))) & pbhFieldMask
}

// signedField 把 10 位补码扩展成 int32
func signedField(bits uint32) int32 {
	return int32(bits<<pitchOffset) >> pitchOffset
}

// PackPBH 俯仰与坡度按 FSD 约定取反后编码
func PackPBH(pitch, bank, heading float64, onGround bool) uint32 {
	pbh := packAngle(pitch, -pitchMultiplier)<<pitchOffset |
		packAngle(bank, -bankMultiplier)<<bankOffset |
		packAngle(heading, headingMultiplier)<<headingOffset
	if onGround {
		pbh |= pbhOnGround
	}
	return pbh
}

func UnpackPBH(pbh uint32) (pitch, bank, heading float64, onGround bool) {
	onGround = pbh&pbhOnGround != 0
	heading = float64((pbh>>headingOffset)&pbhFieldMask) * (360.0 / 1024.0)
	bank = float64(signedField((pbh>>bankOffset)&pbhFieldMask)) * (-180.0 / 512.0)
	pitch = float64(signedField((pbh>>pitchOffset)&pbhFieldMask)) * (-90.0 / 256.0)
	return
}
