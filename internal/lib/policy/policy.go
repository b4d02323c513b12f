// Package policy содержит единую проверку прав доступа к ресурсам.
//
// Все обработчики, работающие с данными конкретного пользователя,
// используют CanAccess вместо собственных проверок роли и владения.
package policy

// CanAccess сообщает, может ли пользователь с ролью role и идентификатором
// userUID работать с ресурсом, принадлежащим ownerUID.
// Администратору доступны любые ресурсы, обычному пользователю — только свои.
func CanAccess(role, userUID, ownerUID string) bool {
	if role == "admin" {
		return true
	}
	return userUID != "" && userUID == ownerUID
}

// IsAdmin сообщает, обладает ли пользователь административной ролью.
func IsAdmin(role string) bool {
	return role == "admin"
}
