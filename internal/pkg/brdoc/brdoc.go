// Package brdoc validates Brazilian taxpayer documents (CPF and CNPJ).
package brdoc

import "strings"

// Normalize strips everything but digits.
func Normalize(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF checks the 11-digit CPF including its two check digits.
func ValidCPF(cpf string) bool {
	cpf = Normalize(cpf)
	if len(cpf) != 11 || allSame(cpf) {
		return false
	}
	d1 := checkDigit(cpf[:9], 10)
	d2 := checkDigit(cpf[:10], 11)
	return cpf[9] == d1 && cpf[10] == d2
}

// ValidCNPJ checks the 14-digit CNPJ including its two check digits.
func ValidCNPJ(cnpj string) bool {
	cnpj = Normalize(cnpj)
	if len(cnpj) != 14 || allSame(cnpj) {
		return false
	}
	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	d1 := cnpjDigit(cnpj[:12], weights1)
	d2 := cnpjDigit(cnpj[:13], weights2)
	return cnpj[12] == d1 && cnpj[13] == d2
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a CPF check digit with descending weights starting
// at startWeight.
func checkDigit(digits string, startWeight int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return byte('0' + rest)
}

func cnpjDigit(digits string, weights []int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}
