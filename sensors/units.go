// sensors/units.go
package sensors

import (
	"fmt"
	"math"
	"strings"
)

// Допустимые единицы измерения температуры
var ValidUnits = []string{
	"c",
	"celsius",
	"f",
	"fahrenheit",
	"k",
	"kelvin",
}

// CheckUnit проверяет, что единица измерения является одной из допустимых
func CheckUnit(unit string) error {
	u := strings.ToLower(unit)
	for _, valid := range ValidUnits {
		if u == valid {
			return nil
		}
	}
	return fmt.Errorf("единица измерения должна быть одной из: %s, получено: %q",
		strings.Join(ValidUnits, ", "), unit)
}

// RoundToHundredth округляет число до сотых (2 знака после запятой)
func RoundToHundredth(value float64) float64 {
	return math.Round(value*100) / 100
}

// CelsiusToFahrenheit переводит температуру из Цельсия в Фаренгейт
func CelsiusToFahrenheit(celsius float64) float64 {
	return RoundToHundredth(celsius*9/5 + 32)
}

// CelsiusToKelvin переводит температуру из Цельсия в Кельвин
func CelsiusToKelvin(celsius float64) float64 {
	return RoundToHundredth(celsius + 273.15)
}

// Convert переводит температуру из Цельсия в указанную единицу измерения.
// Замеры всегда хранятся в Цельсиях, перевод выполняется на границе вывода.
func Convert(celsius float64, unit string) (float64, error) {
	if err := CheckUnit(unit); err != nil {
		return 0, err
	}

	switch strings.ToLower(unit) {
	case "f", "fahrenheit":
		return CelsiusToFahrenheit(celsius), nil
	case "k", "kelvin":
		return CelsiusToKelvin(celsius), nil
	default:
		return RoundToHundredth(celsius), nil
	}
}

// UnitSymbol возвращает обозначение единицы измерения для вывода
func UnitSymbol(unit string) string {
	switch strings.ToLower(unit) {
	case "f", "fahrenheit":
		return "°F"
	case "k", "kelvin":
		return "K"
	default:
		return "°C"
	}
}
