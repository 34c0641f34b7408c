// Package commission считает разбивку суммы на комиссию площадки и чистую
// выплату автору.
package commission

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeAmount возвращается для отрицательной суммы: суммы в рейт-карте
// неотрицательны, отрицательный ввод — ошибка вызывающего, не повод обрезать.
var ErrNegativeAmount = errors.New("negative amount")

// ErrInvalidFeePct возвращается для процента комиссии вне диапазона [0, 100].
var ErrInvalidFeePct = errors.New("fee percent out of range")

// Breakdown — разбивка суммы: комиссия и чистая выплата.
type Breakdown struct {
	Fee int `json:"fee"`
	Net int `json:"net"`
}

// Split делит сумму на комиссию и чистую выплату.
//
// Комиссия округляется арифметически (половина — вверх), чистая выплата —
// точный остаток без собственного округления, поэтому Fee + Net == amount
// всегда выполняется точно.
func Split(amount, feePct int) (Breakdown, error) {
	const op = "commission.Split"

	if amount < 0 {
		return Breakdown{}, fmt.Errorf("%s: %w", op, ErrNegativeAmount)
	}
	if feePct < 0 || feePct > 100 {
		return Breakdown{}, fmt.Errorf("%s: %w", op, ErrInvalidFeePct)
	}

	fee := int(math.Floor(float64(amount)*float64(feePct)/100 + 0.5))
	return Breakdown{
		Fee: fee,
		Net: amount - fee,
	}, nil
}
