package auth

import "fmt"

// welcomeEmail renders the registration greeting in both HTML and plain
// text.
func welcomeEmail(name string) (subject, html, text string) {
	subject = "¡Bienvenido a Partners!"
	html = fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>¡Hola %s!</h2>
    <p>Tu cuenta fue creada con éxito. Ya podés explorar el catálogo,
    armar tu carrito y hacer tu primer pedido.</p>
    <p>— El equipo de Partners</p>
  </body>
</html>`, name)
	text = fmt.Sprintf("¡Hola %s! Tu cuenta fue creada con éxito. Ya podés explorar el catálogo, armar tu carrito y hacer tu primer pedido.\n\n— El equipo de Partners", name)
	return subject, html, text
}
