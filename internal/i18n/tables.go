package i18n

// Keys used by the screens.
const (
	KeyDashboardTitle       = "dashboard_title"
	KeyTotalIncome          = "total_income"
	KeyTotalExpense         = "total_expense"
	KeyBalance              = "balance"
	KeyOverspending         = "overspending_warning"
	KeyLoadingFailed        = "loading_failed"
	KeySessionExpired       = "session_expired"
	KeyLoginFailed          = "login_failed"
	KeyLoggedOut            = "logged_out"
	KeyInvalidRequest       = "invalid_request"
	KeySignupDone           = "signup_done"
	KeyPasswordResetSent    = "password_reset_sent"
	KeyRecommendationsTitle = "recommendations_title"
	KeyStatisticsTitle      = "statistics_title"
	KeyExpenses             = "expenses"
	KeyIncomes              = "incomes"
	KeyNoData               = "no_data"
	KeySaveFailed           = "save_failed"
	KeyCategories           = "categories"
	KeySpent                = "spent"
)

var builtinTables = map[string]map[string]string{
	"en": {
		KeyDashboardTitle:       "Overview",
		KeyTotalIncome:          "Total income",
		KeyTotalExpense:         "Total expenses",
		KeyBalance:              "Balance",
		KeyOverspending:         "You are spending more than you earn",
		KeyLoadingFailed:        "Could not load your data. Please try again later.",
		KeySessionExpired:       "Your session has expired. Please sign in again.",
		KeyLoginFailed:          "Invalid email or password",
		KeyLoggedOut:            "You have been signed out",
		KeyInvalidRequest:       "The request could not be understood",
		KeySignupDone:           "Account created. You can sign in now.",
		KeyPasswordResetSent:    "If the email exists, a reset link has been sent",
		KeyRecommendationsTitle: "Recommendations",
		KeyStatisticsTitle:      "Statistics",
		KeyExpenses:             "Expenses",
		KeyIncomes:              "Incomes",
		KeyNoData:               "Nothing here yet",
		KeySaveFailed:           "Your changes could not be saved. Please try again.",
		KeyCategories:           "Categories",
		KeySpent:                "Spent",
	},
	"es": {
		KeyDashboardTitle:       "Resumen",
		KeyTotalIncome:          "Ingresos totales",
		KeyTotalExpense:         "Gastos totales",
		KeyBalance:              "Saldo",
		KeyOverspending:         "Estás gastando más de lo que ganas",
		KeyLoadingFailed:        "No se pudieron cargar tus datos. Inténtalo más tarde.",
		KeySessionExpired:       "Tu sesión ha expirado. Inicia sesión de nuevo.",
		KeyLoginFailed:          "Correo o contraseña incorrectos",
		KeyLoggedOut:            "Has cerrado sesión",
		KeyInvalidRequest:       "No se pudo entender la solicitud",
		KeySignupDone:           "Cuenta creada. Ya puedes iniciar sesión.",
		KeyPasswordResetSent:    "Si el correo existe, se ha enviado un enlace de recuperación",
		KeyRecommendationsTitle: "Recomendaciones",
		KeyStatisticsTitle:      "Estadísticas",
		KeyExpenses:             "Gastos",
		KeyIncomes:              "Ingresos",
		KeyNoData:               "Aún no hay nada aquí",
		KeySaveFailed:           "No se pudieron guardar los cambios. Inténtalo de nuevo.",
		KeyCategories:           "Categorías",
		KeySpent:                "Gastado",
	},
}
