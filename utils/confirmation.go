package utils

import (
	"math/rand"
	"time"

	"github.com/mkamau21/villastay/models"
	"gorm.io/gorm"
)

const confirmationCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateConfirmationCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, confirmationCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var reservation models.Reservation
		err := tx.Where("confirmation_code = ?", code).First(&reservation).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
