package control

// CtrlOptions selects socket options applied at dial time. Zero
// fields leave the system defaults untouched.
type CtrlOptions struct {
	KeepAlive   int
	NoDelay     int
	RecvBufSize int
	SendBufSize int
}
