package domain

// CustomerProfile caches contact details so returning customers are not asked again.
type CustomerProfile struct {
	CustomerID int64
	Name       string
	Phone      string
	Lang       string
}

// HasContact returns true if both name and phone are known
func (p *CustomerProfile) HasContact() bool {
	return p.Name != "" && p.Phone != ""
}

// Language returns the profile language or the default
func (p *CustomerProfile) Language() string {
	if IsSupportedLang(p.Lang) {
		return p.Lang
	}
	return DefaultLang
}

// Actor is the party performing an operation.
type Actor struct {
	UserID     int64
	IsProvider bool
}
