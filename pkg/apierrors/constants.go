package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgFailTaskStats      = "failTaskStats"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgSubtaskNotFound    = "subtaskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"

	MsgFailListCategories     = "failListCategories"
	MsgInvalidCategoryPayload = "invalidCategoryPayload"
	MsgCategoryExists         = "categoryExists"
	MsgFailCreateCategory     = "failCreateCategory"

	MsgFailPreferences = "failPreferences"

	MsgUnauthorized         = "unauthorized"
	MsgPaymentRequired      = "paymentRequired"
	MsgBillingNotConfigured = "billingNotConfigured"
	MsgFailBilling          = "failBilling"
)
