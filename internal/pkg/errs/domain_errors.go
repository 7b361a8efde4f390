package errs

// Error kinds shared by every layer. Handlers translate them to HTTP statuses;
// anything unmarked is treated as an internal failure.
var (
	ErrNotFound   = New("not found")
	ErrForbidden  = New("forbidden")
	ErrBadRequest = New("bad request")
	ErrConflict   = New("conflict")
)

func NotFound(msg string) error {
	return Mark(New(msg), ErrNotFound)
}

func Forbidden(msg string) error {
	return Mark(New(msg), ErrForbidden)
}

func BadRequest(msg string) error {
	return Mark(New(msg), ErrBadRequest)
}

func BadRequestf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrBadRequest)
}

func Conflict(msg string) error {
	return Mark(New(msg), ErrConflict)
}

// KindOf reports which of the kind markers err carries, or nil when none.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrBadRequest, ErrConflict} {
		if Is(err, kind) {
			return kind
		}
	}
	return nil
}
