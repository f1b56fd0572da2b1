package services

import (
	"errors"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"
	"github.com/NasiChan/lab2life-webapp/utils"
)

const DemoUserEmail = "demo@lab2life.local"

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
	}
	return config.DB.Create(&user).Error
}

func AuthenticateUser(email, password string) (string, error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.Email)
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// DemoUser returns the shared demo account, creating it on first access.
// Requests without a bearer token run as this user.
func DemoUser() (*models.User, error) {
	var user models.User
	err := config.DB.First(&user, "email = ?", DemoUserEmail).Error
	if err == nil {
		return &user, nil
	}

	hashed, err := utils.HashPassword("demo")
	if err != nil {
		return nil, err
	}
	user = models.User{
		Email:    DemoUserEmail,
		Password: hashed,
		FullName: "Demo User",
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
