package diario

import "math"

// StatusTriagem classifica o percentual de protocolos vencidos.
// Acima de 30% é crítico, acima de 15% pede atenção; os limites são
// exclusivos (30% exato ainda é atenção). Com total zero não há
// classificação.
func StatusTriagem(vencidos, total int) string {
	if total <= 0 {
		return ""
	}
	percentual := float64(vencidos) / float64(total) * 100
	switch {
	case percentual > 30:
		return TriagemCritico
	case percentual > 15:
		return TriagemAtencao
	default:
		return TriagemNormal
	}
}

// CalcularEficiencia arredonda atendido/total para percentual inteiro
func CalcularEficiencia(atendido, total int) int {
	return int(math.Round(float64(atendido) / float64(total) * 100))
}

// ClassificarEficiencia aplica as faixas fixas de qualidade
func ClassificarEficiencia(eficiencia int) string {
	switch {
	case eficiencia >= 95:
		return "excelente"
	case eficiencia >= 85:
		return "bom"
	case eficiencia >= 70:
		return "regular"
	default:
		return "ruim"
	}
}
