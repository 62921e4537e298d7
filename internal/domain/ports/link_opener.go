package ports

// LinkOpener hands a url over to the platform's default link handler.
type LinkOpener interface {
	Open(url string) error
}
