package apierrors

const (
	MsgValidationError          = "validationError"
	MsgInvalidParameters        = "invalidParameters"
	MsgInvalidQueryParameters   = "invalidQueryParameters"
	MsgRouteNotFound            = "routeNotFound"
	MsgServerError              = "serverError"
	MsgNoTokenProvided          = "noTokenProvided"
	MsgInvalidToken             = "invalidToken"
	MsgInvalidTokenUserNotFound = "invalidTokenUserNotFound"
	MsgUserAlreadyExists        = "userAlreadyExists"
	MsgInvalidCredentials       = "invalidCredentials"
	MsgTaskNotFound             = "taskNotFound"
	MsgTaskUpdateForbidden      = "taskUpdateForbidden"
	MsgTaskDeleteForbidden      = "taskDeleteForbidden"
)

// Field-level messages; templates receive Field, Param and Type.
const (
	MsgFieldRequired   = "fieldRequired"
	MsgFieldNotAllowed = "fieldNotAllowed"
	MsgFieldNotNull    = "fieldNotNull"
	MsgFieldInvalid    = "fieldInvalid"
	MsgFieldType       = "fieldType"
	MsgFieldMinLength  = "fieldMinLength"
	MsgFieldMaxLength  = "fieldMaxLength"
	MsgFieldMinValue   = "fieldMinValue"
	MsgFieldMaxValue   = "fieldMaxValue"
	MsgFieldEmail      = "fieldEmail"
	MsgFieldOneOf      = "fieldOneOf"
	MsgFieldObjectID   = "fieldObjectID"
	MsgFieldISODate    = "fieldISODate"
	MsgBodyMalformed   = "bodyMalformed"
	MsgBodyEmptyUpdate = "bodyEmptyUpdate"
)
