package block

import (
	"strconv"
	"strings"
)

// Device 表示渲染时的设备上下文，用于在成对的响应式属性之间取值。
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// ParseDevice 宽容地解析设备标识，未知值回退到桌面端。
func ParseDevice(raw string) Device {
	if strings.EqualFold(strings.TrimSpace(raw), string(DeviceMobile)) {
		return DeviceMobile
	}
	return DeviceDesktop
}

// String 读取字符串属性，缺失或类型不符时返回 fallback。
func String(props PropMap, key, fallback string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fallback
}

// Int 读取整数属性。JSON 反序列化会把数字还原为 float64，这里一并接受。
func Int(props PropMap, key string, fallback int) int {
	switch v := props[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// Bool 读取布尔属性，缺失或类型不符时返回 fallback。
func Bool(props PropMap, key string, fallback bool) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return fallback
}

// 响应式属性以成对的 ...Desktop / ...Mobile 键存储，渲染时按设备取值。
// 移动端取不到时回退桌面端的值，再回退 fallback。

// ResponsiveString 按设备解析成对存储的字符串属性。
func ResponsiveString(props PropMap, base string, dev Device, fallback string) string {
	desktop := String(props, base+"Desktop", fallback)
	if dev == DeviceMobile {
		return String(props, base+"Mobile", desktop)
	}
	return desktop
}

// ResponsiveInt 按设备解析成对存储的整数属性。
func ResponsiveInt(props PropMap, base string, dev Device, fallback int) int {
	desktop := Int(props, base+"Desktop", fallback)
	if dev == DeviceMobile {
		return Int(props, base+"Mobile", desktop)
	}
	return desktop
}
