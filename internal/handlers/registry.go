package handlers

// AppHandlers bundles every handler of the application.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	StudentHandler     *StudentHandler
	ProfileHandler     *ProfileHandler
	EndorsementHandler *EndorsementHandler
	AdminHandler       *AdminHandler
	FileHandler        *FileHandler
}
