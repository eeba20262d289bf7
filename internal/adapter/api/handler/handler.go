package handler

import (
	"homerent/internal/usecase"
)

var (
	authHandler   *AuthHandler
	userHandler   *UserHandler
	houseHandler  *HouseHandler
	coinHandler   *CoinHandler
	ratingHandler *RatingHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	houseUseCase *usecase.HouseUseCase,
	coinUseCase *usecase.CoinUseCase,
	ratingUseCase *usecase.RatingUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	houseHandler = NewHouseHandler(houseUseCase)
	coinHandler = NewCoinHandler(coinUseCase)
	ratingHandler = NewRatingHandler(ratingUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetHouseHandler() *HouseHandler {
	return houseHandler
}

func GetCoinHandler() *CoinHandler {
	return coinHandler
}

func GetRatingHandler() *RatingHandler {
	return ratingHandler
}
