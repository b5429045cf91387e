package apimodels

const (
	StatusFail    = "fail"
	StatusSuccess = "success"
)

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

func NewError(message string) Response {
	return Response{
		Status:  StatusFail,
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}
