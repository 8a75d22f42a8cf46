package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// Substitui o componente React CartTemplate do front antigo: o corpo inteiro
// vai pronto no campo cart_contents_html do webhook.
const cartTemplateHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2 style="color: #333;">Você esqueceu algo no seu carrinho!</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr style="background: #f4f4f4;">
      <th style="text-align: left; padding: 8px;">Produto</th>
      <th style="text-align: right; padding: 8px;">Qtd</th>
      <th style="text-align: right; padding: 8px;">Preço</th>
    </tr>
    {{range .Items}}
    <tr>
      <td style="padding: 8px; border-bottom: 1px solid #ddd;">
        {{if .ImageURL}}<img src="{{.ImageURL}}" alt="" width="48" style="vertical-align: middle; margin-right: 8px;">{{end}}
        {{.Description}}
      </td>
      <td style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">{{.Quantity}}</td>
      <td style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">{{printf "$%.2f" .UnitPrice}}</td>
    </tr>
    {{end}}
  </table>
  <div style="display:none">debug: origination={{.Debug.Origination.Format "2006-01-02T15:04:05Z07:00"}}
       sequence={{.Debug.Sequence}} email={{.Debug.Email}}
       name={{.Debug.FirstName}} {{.Debug.LastName}}</div>
</div>`

var cartTmpl = template.Must(template.New("cart").Parse(cartTemplateHTML))

type CartTemplateRenderer struct{}

func NewCartTemplateRenderer() *CartTemplateRenderer {
	return &CartTemplateRenderer{}
}

func (r *CartTemplateRenderer) RenderCart(data CartEmailData) (string, error) {
	var body bytes.Buffer
	if err := cartTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template do carrinho: %w", err)
	}
	return body.String(), nil
}
