package httperr

var messages = map[string]string{
	"missing_params":         "Data, profissional e serviço são obrigatórios.",
	"invalid_date":           "Data inválida.",
	"invalid_duration":       "Duração do serviço inválida.",
	"invalid_slot":           "Horário inválido.",
	"invalid_time_range":     "O início deve ser anterior ao fim.",
	"professional_not_found": "Profissional não encontrado.",
	"service_not_found":      "Serviço não encontrado.",
	"appointment_not_found":  "Agendamento não encontrado.",
	"time_block_not_found":   "Bloqueio não encontrado.",
	"slot_unavailable":       "Horário indisponível.",
	"time_conflict":          "Conflito de horário.",
	"invalid_state":          "Operação não permitida no estado atual.",
	"invalid_schedule":       "Horário de trabalho inválido.",
	"invalid_month":          "Ano ou mês inválido.",
	"invalid_id":             "Identificador inválido.",
	"invalid_weekday":        "Dia da semana inválido.",
	"email_taken":            "E-mail já cadastrado.",
	"invalid_photo":          "Imagem inválida.",
	"photo_storage_disabled": "Armazenamento de fotos não configurado.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}
