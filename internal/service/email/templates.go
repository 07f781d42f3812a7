package email

// Email templates using HTML. Each HTML template has a plain-text sibling
// so clients without HTML rendering still get the content.

const styleBlock = `
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Inter, Helvetica, Arial, sans-serif; line-height: 1.6; color: #0b1211; background: #ffffff; max-width: 640px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #0f766e, #115e59); color: white; padding: 24px; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { padding: 24px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 16px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        table { border-collapse: collapse; width: 100%; }
        td { padding: 8px 12px; border: 1px solid #e5e7eb; vertical-align: top; }
        td.label { background: #f9fafb; font-weight: 600; white-space: nowrap; }
    </style>`

const leadNotificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">` + styleBlock + `
</head>
<body>
    <div class="header">
        <h1>New Lead &bull; {{.BusinessName}}</h1>
    </div>
    <div class="content">
        <p style="margin: 0 0 16px 0; color: #374151;">You received a new lead from your website.</p>
        <table>
            {{range .Rows}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
            {{end}}
        </table>
    </div>
    <div class="footer">
        <p>Tip: Reply to this email to respond directly to the lead.</p>
    </div>
</body>
</html>
`

const leadNotificationText = `New lead received

Name: {{.Lead.Name}}
Email: {{.Lead.Email}}
Phone: {{.Lead.Phone}}
Plan: {{.Lead.Plan}}
Message:
{{.Lead.Message}}

Meta:
Created: {{.Lead.Created}}
Referrer: {{.Lead.Referrer}}
Source: {{.Lead.Source}}
IP: {{.Lead.IP}}
User-Agent: {{.Lead.UserAgent}}
ID: {{.Lead.ID}}
`

const newRequestTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">` + styleBlock + `
</head>
<body>
    <div class="header">
        <h1>New {{.Kind}} Request</h1>
    </div>
    <div class="content">
        <p>A new order was submitted and is waiting in the back office.</p>
        <table>
            <tr><td class="label">Order</td><td>{{.OrderID}}</td></tr>
            <tr><td class="label">Customer</td><td>{{.Name}}</td></tr>
            <tr><td class="label">Email</td><td>{{.Email}}</td></tr>
            <tr><td class="label">Phone</td><td>{{.Phone}}</td></tr>
            <tr><td class="label">Submitted</td><td>{{.Submitted}}</td></tr>
        </table>
    </div>
    <div class="footer">
        <p>{{.BusinessName}} back office notification</p>
    </div>
</body>
</html>
`

const newRequestText = `New {{.Kind}} request

Order: {{.OrderID}}
Customer: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}
Submitted: {{.Submitted}}
`

const autoResponseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">` + styleBlock + `
</head>
<body>
    <div class="header">
        <h1>{{.BusinessName}}</h1>
    </div>
    <div class="content">
        <h2>Hi {{.Name}},</h2>
        <p>{{.Message}}</p>
    </div>
    <div class="footer">
        <p>&copy; {{.BusinessName}}</p>
    </div>
</body>
</html>
`

const autoResponseText = `Hi {{.Name}},

{{.Message}}

{{.BusinessName}}
`
