package common

// Keys under which the session layer keeps its flags in the metadata store.
const (
	CurrentUserKey  = "auth.current.email"
	SessionIDKey    = "auth.session.id"
	AppLockPinKey   = "app_pin_hash"
	DefaultDatabase = "classkeeper.db"
)
