package service

import "errors"

var (
	ErrRoleInUse          = errors.New("role is still held by users")
	ErrMenuCycle          = errors.New("menu parent would create a cycle")
	ErrMenuHasChildren    = errors.New("menu still has children")
	ErrParentNotFound     = errors.New("parent menu not found")
	ErrBlankMenuTitle     = errors.New("menu title must not be blank")
	ErrBlankRoleName      = errors.New("role name must not be blank")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadySeeded      = errors.New("store already holds data")
	ErrInvalidSeed        = errors.New("invalid seed data")
)
