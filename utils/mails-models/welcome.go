package mailsmodels

import (
	"fmt"

	"github.com/mmanthe37/gear-ai-v1/utils"
)

func Welcome(email string, userName string) {
	subject := "Subject: Welcome to Gear AI CoPilot \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	name := userName
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(`
	<div style="background-color: #1B2A4A; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Welcome to Gear AI CoPilot</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Hi %s, your garage is ready. Add your first vehicle and start logging maintenance.</td>
				</tr>
			</tbody>
		</table>
	</div>
`, name)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}
