package service

import "github.com/go-playground/validator/v10"

// validador compartido para los request structs con tags `validate`
var validate = validator.New()
